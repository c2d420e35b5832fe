package models

import "time"

// PracticeSession is one timed practice interval logged against a project.
// Duration is elapsed wall-clock time in milliseconds. The system records
// StartTime/EndTime as reported but does not verify they agree with
// Duration.
type PracticeSession struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"projectId"`
	Duration  int64     `json:"duration"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
