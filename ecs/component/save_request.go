package component

// SaveRequest is a one-shot request for a snapshot write. The transition
// manager emits one after every completed transition (auto-save); the outer
// game loop emits one for a manual save. Multiple requests in one tick
// coalesce into a single write.
type SaveRequest struct {
	Manual bool
}

var SaveRequestComponent = NewComponent[SaveRequest]()
