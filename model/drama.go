package model

// VOD identifies the kind of catalog a drama is hosted on. Each VOD value has
// exactly one Fetcher implementation registered for it.
type VOD string

const (
	// Ifvod dramas live on an ifvod-style detail page scraped from HTML.
	VODIfvod VOD = "ifvod"
	// Rss dramas are identified by a feed URL and fetched as RSS/Atom.
	VODRss VOD = "rss"
)

// DramaRecord is the cached observation of a single drama, stored under the
// `<dramaId>` key. One record per drama id, shared by every user tracking it.
//
// CurrentShowList: show ids in the order the catalog lists them.
// LastUpdatedTime: unix seconds of the last successful fetch.
// DeltaShowList: shows present in CurrentShowList but absent from the
// previous observation. Empty on the first ever sighting.
type DramaRecord struct {
	CurrentShowList []string `json:"current_show_list"`
	LastUpdatedTime int64    `json:"last_updated_time"`
	DeltaShowList   []string `json:"delta_show_list"`
}

// DramaMetadata is the write-once metadata of a drama, stored under the
// `<dramaId>:metadata` key. DramaName is assumed immutable for the lifetime
// of the drama id.
type DramaMetadata struct {
	DramaName string `json:"drama_name"`
}

// Report maps drama id to its non-empty delta show list. A report handed to a
// Notifier never contains an empty delta.
type Report map[string][]string

// DramaInfo is the per-drama view returned to the UI layer: resolved name
// plus the last observed show list as playable links.
type DramaInfo struct {
	DramaName string   `json:"drama_name"`
	ShowList  []string `json:"show_list"`
}
