package dto

type ManualInput struct {
	Date    string
	Hours   int
	Minutes int
	Seconds int
}

type StateOutput struct {
	Mode             string
	Running          bool
	Saving           bool
	ElapsedSeconds   int64
	ElapsedFormatted string
	Manual           ManualInput
}

type SaveOutput struct {
	RecordID          string
	Date              string
	DurationSeconds   int64
	DurationFormatted string
	NotePath          string
	Manual            bool
}
