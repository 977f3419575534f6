package jsonfile

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"task-reminder-bot/internal/model"
)

// naiveLayout matches Python's datetime.isoformat() for naive values.
const naiveLayout = "2006-01-02T15:04:05"

// legacyNamespace seeds deterministic ids for records written without one.
var legacyNamespace = uuid.MustParse("5b0c3d6e-2f4a-4e0b-9a51-7c2f1d8e4a90")

// record is the on-disk layout. Field names are shared with files written by
// earlier versions of the bot and must not change.
type record struct {
	ID           string `json:"id,omitempty"`
	Text         string `json:"text"`
	Time         string `json:"time"`
	UserID       int64  `json:"user_id"`
	Notified     bool   `json:"notified"`
	RemindBefore int    `json:"remind_before"`
}

func formatTime(t time.Time, loc *time.Location) string {
	t = t.In(loc)
	s := t.Format(naiveLayout)
	if us := t.Nanosecond() / int(time.Microsecond); us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	t, err := time.ParseInLocation(naiveLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q: %w", s, err)
	}
	return t, nil
}

func legacyID(index int, r record) string {
	key := strconv.Itoa(index) + "|" + strconv.FormatInt(r.UserID, 10) + "|" + r.Time + "|" + r.Text
	return uuid.NewSHA1(legacyNamespace, []byte(key)).String()
}

func toModel(index int, r record, loc *time.Location) (model.Task, error) {
	due, err := parseTime(r.Time, loc)
	if err != nil {
		return model.Task{}, fmt.Errorf("record %d: %w", index, err)
	}

	id := r.ID
	if id == "" {
		id = legacyID(index, r)
	}

	return model.Task{
		ID:          id,
		Text:        r.Text,
		DueAt:       due,
		OwnerID:     r.UserID,
		LeadMinutes: r.RemindBefore,
		Notified:    r.Notified,
	}, nil
}

func toRecord(t model.Task, loc *time.Location) record {
	return record{
		ID:           t.ID,
		Text:         t.Text,
		Time:         formatTime(t.DueAt, loc),
		UserID:       t.OwnerID,
		Notified:     t.Notified,
		RemindBefore: t.LeadMinutes,
	}
}
