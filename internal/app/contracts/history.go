package contracts

// HistorySource is the browser-history boundary: the current path plus a
// path-changed event stream (back/forward navigation).
type HistorySource interface {
	CurrentPath() string
	SubscribePathChanges(callback func(path string)) func()
}
