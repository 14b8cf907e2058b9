package steam

// GameDetail is the flattened storefront document the enrich job stores
// Description is already HTML-stripped by the client
type GameDetail struct {
	AppID           int64
	Name            string
	Description     string
	HeaderImage     string
	BackgroundImage string
	ReleaseDate     string
	Price           float64
	IsFree          bool
	Genres          []string
	Categories      []string
}

// MostPlayedEntry is one row of the most-played chart, upstream rank ordered
type MostPlayedEntry struct {
	Rank           int   `json:"rank"`
	AppID          int64 `json:"appid"`
	Concurrent     int64 `json:"concurrent_in_game"`
	PeakInGame     int64 `json:"peak_in_game"`
	LastWeekRank   int   `json:"last_week_rank"`
	PeakConcurrent int64 `json:"peak_concurrent"`
}

// ComingSoonEntry is one row of the storefront coming-soon shelf
type ComingSoonEntry struct {
	AppID       int64  `json:"id"`
	Name        string `json:"name"`
	HeaderImage string `json:"header_image"`
	Discounted  bool   `json:"discounted"`
	Currency    string `json:"currency"`
	FinalPrice  int64  `json:"final_price"`
}

// PlayerSummary is a partial Steam community profile document
type PlayerSummary struct {
	SteamID      string `json:"steamid"`
	PersonaName  string `json:"personaname"`
	ProfileURL   string `json:"profileurl"`
	Avatar       string `json:"avatar"`
	AvatarFull   string `json:"avatarfull"`
	PersonaState int    `json:"personastate"`
	GameID       string `json:"gameid,omitempty"`
	LastLogoff   int64  `json:"lastlogoff"`
	TimeCreated  int64  `json:"timecreated"`
	CountryCode  string `json:"loccountrycode,omitempty"`
}

// OwnedGame is one library entry from GetOwnedGames or GetRecentlyPlayedGames
type OwnedGame struct {
	AppID           int64  `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int64  `json:"playtime_forever"`
	Playtime2Weeks  int64  `json:"playtime_2weeks,omitempty"`
	ImgIconURL      string `json:"img_icon_url"`
}

// wire envelopes, decoded once and flattened into the records above

type playerCountEnvelope struct {
	Response struct {
		PlayerCount int64 `json:"player_count"`
		Result      int   `json:"result"`
	} `json:"response"`
}

type mostPlayedEnvelope struct {
	Response struct {
		Ranks []MostPlayedEntry `json:"ranks"`
	} `json:"response"`
}

type appDetailsEntry struct {
	Success bool `json:"success"`
	Data    struct {
		Name             string `json:"name"`
		ShortDescription string `json:"short_description"`
		HeaderImage      string `json:"header_image"`
		Background       string `json:"background_raw"`
		IsFree           bool   `json:"is_free"`
		ReleaseDate      struct {
			ComingSoon bool   `json:"coming_soon"`
			Date       string `json:"date"`
		} `json:"release_date"`
		PriceOverview *struct {
			Currency string `json:"currency"`
			Final    int64  `json:"final"`
		} `json:"price_overview"`
		Genres []struct {
			Description string `json:"description"`
		} `json:"genres"`
		Categories []struct {
			Description string `json:"description"`
		} `json:"categories"`
	} `json:"data"`
}

type featuredCategoriesEnvelope struct {
	ComingSoon struct {
		Items []ComingSoonEntry `json:"items"`
	} `json:"coming_soon"`
}

type playerSummariesEnvelope struct {
	Response struct {
		Players []PlayerSummary `json:"players"`
	} `json:"response"`
}

type ownedGamesEnvelope struct {
	Response struct {
		GameCount int64       `json:"game_count"`
		Games     []OwnedGame `json:"games"`
	} `json:"response"`
}

type recentlyPlayedEnvelope struct {
	Response struct {
		TotalCount int64       `json:"total_count"`
		Games      []OwnedGame `json:"games"`
	} `json:"response"`
}

type vanityEnvelope struct {
	Response struct {
		Success int    `json:"success"`
		SteamID string `json:"steamid"`
		Message string `json:"message"`
	} `json:"response"`
}
