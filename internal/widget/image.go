package widget

// ImageState is the visual state of a card's image region.
type ImageState string

const (
	ImageLoading ImageState = "loading"
	ImageLoaded  ImageState = "loaded"
	ImageFailed  ImageState = "failed"
)

// Image is an asynchronously filled image region.
type Image struct {
	URL    string     `json:"url,omitempty"`
	State  ImageState `json:"state"`
	Width  int        `json:"width,omitempty"`
	Height int        `json:"height,omitempty"`
	Format string     `json:"format,omitempty"`
	Err    string     `json:"error,omitempty"`
}

// Terminal reports whether the region reached a final state.
func (i *Image) Terminal() bool {
	return i != nil && (i.State == ImageLoaded || i.State == ImageFailed)
}
