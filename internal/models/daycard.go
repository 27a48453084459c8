package models

// DayCard is the merged presentation unit for one classroom on one day.
// Time fields hold " / "-joined formatted ranges.
type DayCard struct {
	Classroom    string
	Venue        string
	FirstTime    string
	SecondTime   string
	BeginnerTime string
	HasNight     bool
	OtherTimes   []string // unclassified ranges, folded into empty slots afterwards
}
