package models

// Video is a single lesson inside a course. It has no lifecycle of
// its own; it lives and dies with its parent course.
type Video struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Duration string `json:"duration"` // display string, e.g. "12:05"
}

// Course represents a learning course
type Course struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Instructor     string  `json:"instructor"`
	Thumbnail      string  `json:"thumbnail"`
	Category       string  `json:"category"`
	Price          int     `json:"price"`
	IsFree         bool    `json:"isFree"`
	Videos         []Video `json:"videos"`
	YoutubeChannel string  `json:"youtubeChannel,omitempty"`
}

// Normalize derives isFree from price. Price is the source of truth;
// the field is kept on the struct for wire and CSV compatibility.
func (c *Course) Normalize() {
	c.IsFree = c.Price == 0
	if c.Videos == nil {
		c.Videos = []Video{}
	}
}
