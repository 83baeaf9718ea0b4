package valueobjects

import "fmt"

// ActivityType classifies an audit-trail entry.
type ActivityType string

const (
	ActivityComment      ActivityType = "comment"
	ActivityStatusChange ActivityType = "status_change"
	ActivityAssignment   ActivityType = "assignment"
	ActivityMediaUpload  ActivityType = "media_upload"
)

var validActivityTypes = map[ActivityType]bool{
	ActivityComment:      true,
	ActivityStatusChange: true,
	ActivityAssignment:   true,
	ActivityMediaUpload:  true,
}

func (a ActivityType) String() string {
	return string(a)
}

func (a ActivityType) IsValid() bool {
	return validActivityTypes[a]
}

func NewActivityType(s string) (ActivityType, error) {
	a := ActivityType(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid activity type: %s", s)
	}
	return a, nil
}
