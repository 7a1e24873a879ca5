package utils

import (
	"fmt"
	"net/url"
)

// RoomPlaceholderImage is the fallback image for rooms created without one.
func RoomPlaceholderImage(number string) string {
	return fmt.Sprintf("https://via.placeholder.com/300?text=Room+%s", url.QueryEscape(number))
}

// AvatarImage is the fallback avatar for guests created without a photo.
func AvatarImage(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", url.QueryEscape(name))
}
