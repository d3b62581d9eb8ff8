package model

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// AttendeesPerLike converts likes into the displayed attendance estimate.
const AttendeesPerLike = 3.5

type Protest struct {
	ID            int64     `json:"id" db:"id"`
	OrganizerID   int64     `json:"organizer_id" db:"organizer_id"`
	OrganizerName string    `json:"organizer_name,omitempty" db:"organizer_name"`
	Name          string    `json:"name" db:"name"`
	Cause         *string   `json:"cause" db:"cause"`
	Description   *string   `json:"description" db:"description"`
	Location      *string   `json:"location" db:"location"`
	Latitude      *float64  `json:"latitude" db:"latitude"`
	Longitude     *float64  `json:"longitude" db:"longitude"`
	Date          string    `json:"date" db:"date"`
	Time          string    `json:"time" db:"time"`
	Link          *string   `json:"link" db:"link"`
	Tags          []string  `json:"tags" db:"tags"`
	Likes         int       `json:"likes" db:"likes"`
	Attendees     int       `json:"attendees" db:"-"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Normalize fills the fields derived at response time.
func (p *Protest) Normalize() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.Attendees = EstimateAttendees(p.Likes)
}

func EstimateAttendees(likes int) int {
	return int(math.Floor(float64(likes) * AttendeesPerLike))
}

// ProtestParams holds the editable fields of a protest, shared by create and update.
type ProtestParams struct {
	Name        string
	Cause       *string
	Description *string
	Location    *string
	Latitude    *float64
	Longitude   *float64
	Date        string
	Time        string
	Link        *string
	Tags        []string
}

// ProtestRequest 建立/更新抗議活動請求
type ProtestRequest struct {
	Name        string   `json:"name" binding:"required"`
	Cause       *string  `json:"cause"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,longitude"`
	Date        string   `json:"date" binding:"required,datetime=2006-01-02"`
	Time        string   `json:"time" binding:"required,clock"`
	Link        *string  `json:"link"`
	Tags        TagList  `json:"tags"`
}

func (r *ProtestRequest) Params() ProtestParams {
	return ProtestParams{
		Name:        strings.TrimSpace(r.Name),
		Cause:       r.Cause,
		Description: r.Description,
		Location:    r.Location,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Date:        r.Date,
		Time:        r.Time,
		Link:        r.Link,
		Tags:        []string(r.Tags),
	}
}

type LikeRequest struct {
	Liked *bool `json:"liked" binding:"required"`
}

type ProtestListQuery struct {
	Upcoming bool `form:"upcoming"`
}

// TagList accepts either a JSON array of strings or a single comma-delimited string.
// Tags are trimmed and empty entries dropped; order is preserved.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var raw []string
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.Split(s, ",")
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	*t = tags
	return nil
}
