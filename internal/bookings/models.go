package bookings

import "time"

// Duration is the fixed length of every session. End times are always
// derived as start + Duration; there is no variable-length booking.
const Duration = time.Hour

// Session represents a booked meeting between one learner and one speaker.
// Rows are immutable after creation: there is no reschedule or cancel.
type Session struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	AccountID int64     `json:"account_id"`
	SpeakerID int64     `json:"speaker_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LearnerSession is a session as seen by the learner who booked it, with
// the speaker's name joined in.
type LearnerSession struct {
	Session
	SpeakerFirstName string `json:"speaker_first_name"`
	SpeakerLastName  string `json:"speaker_last_name"`
}

// SpeakerSession is a session as seen by the booked speaker, with the
// learner's name joined in.
type SpeakerSession struct {
	Session
	LearnerFirstName string `json:"learner_first_name"`
	LearnerLastName  string `json:"learner_last_name"`
}
