package courseValidator

import (
	"strings"

	"academy/models"
)

// Course validates an admin course payload and returns a field error
// map, empty when the payload is acceptable.
func Course(course models.Course) map[string]string {
	errors := make(map[string]string)

	// Validate Title
	if strings.TrimSpace(course.Title) == "" {
		errors["title"] = "Title is required!"
	} else if len(strings.TrimSpace(course.Title)) < 3 {
		errors["title"] = "Title must be at least 3 characters long!"
	}

	// Validate Price
	if course.Price < 0 {
		errors["price"] = "Price cannot be negative!"
	}

	// Validate Videos
	for _, video := range course.Videos {
		if strings.TrimSpace(video.URL) == "" {
			errors["videos"] = "Every video needs a URL!"
			break
		}
	}

	return errors
}
