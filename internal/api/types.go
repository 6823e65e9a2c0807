package api

// StatusResponse is returned by operations without a body of their own.
type StatusResponse struct {
	Status string `json:"status"`
}

// StatsResponse summarizes the registry.
type StatsResponse struct {
	TotalHosts       int64 `json:"total_hosts"`
	AdhocHosts       int64 `json:"adhoc_hosts"`
	DiscoveredHosts  int64 `json:"discovered_hosts"`
	WebSocketClients int   `json:"websocket_clients"`
	ProfilesCached   int   `json:"profiles_cached"`
}
