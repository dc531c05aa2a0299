package config

import "nextstop/game/engine"

// buildCityMap assembles a CityMap from its lines, deriving each station's
// line list and transfer-hub flag from the lines that stop there. Keeping
// the defaults in this shape means the cross-references cannot drift.
func buildCityMap(city string, lines []engine.SubwayLine, coords map[string][2]float64) *engine.CityMap {
	stations := make(map[string]engine.Station)

	for _, line := range lines {
		for _, stationID := range line.Stations {
			st, exists := stations[stationID]
			if !exists {
				st = engine.Station{ID: stationID}
				if xy, ok := coords[stationID]; ok {
					st.X, st.Y = xy[0], xy[1]
				}
			}
			st.Lines = append(st.Lines, line.ID)
			stations[stationID] = st
		}
	}

	for id, st := range stations {
		if len(st.Lines) >= 2 {
			st.IsTransferHub = true
			stations[id] = st
		}
	}

	lineMap := make(map[engine.LineID]engine.SubwayLine, len(lines))
	for _, line := range lines {
		lineMap[line.ID] = line
	}

	return &engine.CityMap{
		City:     city,
		Stations: stations,
		Lines:    lineMap,
	}
}

// defaultCityMaps returns the compiled-in maps for the four supported
// cities. Files in the config directory shadow these by name.
func defaultCityMaps() map[string]*engine.CityMap {
	return map[string]*engine.CityMap{
		"amsterdam": amsterdamMap(),
		"berlin":    berlinMap(),
		"paris":     parisMap(),
		"madrid":    madridMap(),
	}
}

func amsterdamMap() *engine.CityMap {
	return buildCityMap("amsterdam",
		[]engine.SubwayLine{
			{
				ID:               "m51",
				Color:            "#F7931E",
				Stations:         []string{"centraal", "nieuwmarkt", "waterlooplein", "weesperplein", "amstel"},
				CompletionPoints: engine.CompletionPoints{First: 6, Later: 3},
			},
			{
				ID:               "m52",
				Color:            "#00A1DE",
				Stations:         []string{"noord", "centraal", "rokin", "vijzelgracht", "zuid"},
				CompletionPoints: engine.CompletionPoints{First: 6, Later: 3},
			},
			{
				ID:               "m53",
				Color:            "#EE1C25",
				Stations:         []string{"waterlooplein", "muiderpoort", "diemen", "bijlmer"},
				CompletionPoints: engine.CompletionPoints{First: 5, Later: 2},
			},
		},
		map[string][2]float64{
			"centraal":      {180, 60},
			"nieuwmarkt":    {200, 100},
			"waterlooplein": {220, 140},
			"weesperplein":  {240, 180},
			"amstel":        {280, 220},
			"noord":         {180, 10},
			"rokin":         {170, 110},
			"vijzelgracht":  {160, 160},
			"zuid":          {150, 260},
			"muiderpoort":   {280, 140},
			"diemen":        {340, 160},
			"bijlmer":       {360, 240},
		})
}

func berlinMap() *engine.CityMap {
	return buildCityMap("berlin",
		[]engine.SubwayLine{
			{
				ID:               "u2",
				Color:            "#DA6E1E",
				Stations:         []string{"pankow", "eberswalder", "alexanderplatz", "stadtmitte", "potsdamer-platz", "zoologischer-garten"},
				CompletionPoints: engine.CompletionPoints{First: 7, Later: 3},
			},
			{
				ID:               "u8",
				Color:            "#005A94",
				Stations:         []string{"wittenau", "gesundbrunnen", "alexanderplatz", "moritzplatz", "hermannplatz"},
				CompletionPoints: engine.CompletionPoints{First: 6, Later: 3},
			},
			{
				ID:               "s41",
				Color:            "#A23B1E",
				Stations:         []string{"gesundbrunnen", "ostkreuz", "suedkreuz", "westkreuz"},
				IsRing:           true,
				CompletionPoints: engine.CompletionPoints{First: 5, Later: 2},
			},
		},
		map[string][2]float64{
			"pankow":              {200, 20},
			"eberswalder":         {210, 70},
			"alexanderplatz":      {220, 120},
			"stadtmitte":          {200, 160},
			"potsdamer-platz":     {180, 180},
			"zoologischer-garten": {120, 170},
			"wittenau":            {140, 10},
			"gesundbrunnen":       {180, 70},
			"moritzplatz":         {240, 170},
			"hermannplatz":        {250, 220},
			"ostkreuz":            {300, 150},
			"suedkreuz":           {190, 260},
			"westkreuz":           {70, 150},
		})
}

func parisMap() *engine.CityMap {
	return buildCityMap("paris",
		[]engine.SubwayLine{
			{
				ID:               "m1",
				Color:            "#FFCD00",
				Stations:         []string{"la-defense", "etoile", "louvre", "chatelet", "bastille", "vincennes"},
				CompletionPoints: engine.CompletionPoints{First: 7, Later: 3},
			},
			{
				ID:               "m4",
				Color:            "#BB4D98",
				Stations:         []string{"clignancourt", "gare-du-nord", "chatelet", "saint-germain", "montparnasse"},
				CompletionPoints: engine.CompletionPoints{First: 6, Later: 3},
			},
			{
				ID:               "m6",
				Color:            "#77C695",
				Stations:         []string{"etoile", "trocadero", "montparnasse", "place-d-italie", "nation"},
				CompletionPoints: engine.CompletionPoints{First: 6, Later: 2},
			},
		},
		map[string][2]float64{
			"la-defense":     {20, 100},
			"etoile":         {90, 100},
			"louvre":         {170, 120},
			"chatelet":       {200, 130},
			"bastille":       {250, 140},
			"vincennes":      {320, 150},
			"clignancourt":   {210, 20},
			"gare-du-nord":   {210, 60},
			"saint-germain":  {190, 170},
			"montparnasse":   {170, 220},
			"trocadero":      {90, 150},
			"place-d-italie": {220, 260},
			"nation":         {290, 170},
		})
}

func madridMap() *engine.CityMap {
	return buildCityMap("madrid",
		[]engine.SubwayLine{
			{
				ID:               "l1",
				Color:            "#2DBEF0",
				Stations:         []string{"chamartin", "bilbao", "gran-via", "sol", "atocha"},
				CompletionPoints: engine.CompletionPoints{First: 6, Later: 3},
			},
			{
				ID:               "l3",
				Color:            "#FFDF00",
				Stations:         []string{"moncloa", "callao", "sol", "lavapies", "legazpi"},
				CompletionPoints: engine.CompletionPoints{First: 6, Later: 2},
			},
			{
				ID:               "l6",
				Color:            "#999999",
				Stations:         []string{"moncloa", "cuatro-caminos", "avenida-de-america", "sainz-de-baranda", "legazpi", "principe-pio"},
				IsRing:           true,
				CompletionPoints: engine.CompletionPoints{First: 7, Later: 3},
			},
		},
		map[string][2]float64{
			"chamartin":          {200, 20},
			"bilbao":             {190, 100},
			"gran-via":           {180, 140},
			"sol":                {180, 170},
			"atocha":             {210, 230},
			"moncloa":            {80, 110},
			"callao":             {160, 140},
			"lavapies":           {190, 200},
			"legazpi":            {190, 280},
			"cuatro-caminos":     {160, 60},
			"avenida-de-america": {250, 90},
			"sainz-de-baranda":   {270, 180},
			"principe-pio":       {90, 180},
		})
}
