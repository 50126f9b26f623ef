package streak

import "math"

// WeeklyGoal is the number of workouts per week that earns a full score.
const WeeklyGoal = 4

// Label buckets a consistency score.
type Label int

const (
	Starting Label = iota
	Building
	DialedIn
)

var labelNames = map[Label]string{
	Starting: "Starting",
	Building: "Building",
	DialedIn: "Dialed in",
}

func (l Label) String() string {
	if s, ok := labelNames[l]; ok {
		return s
	}
	return "Unknown"
}

// milestones is the streak ladder. Past the last rung targets grow by
// milestoneStep.
var milestones = []int{7, 21, 30, 50, 100}

const milestoneStep = 10

// Milestone is the next streak target and how many days are left to it.
type Milestone struct {
	Target    int
	Remaining int
}

// Score maps an average weekly workout count onto 0..100.
func Score(avgPerWeek float64) int {
	if math.IsNaN(avgPerWeek) {
		return 0
	}
	raw := avgPerWeek / WeeklyGoal * 100
	raw = math.Max(0, math.Min(100, raw))
	return int(math.Round(raw))
}

// LabelFor buckets score: below 40 Starting, below 70 Building.
func LabelFor(score int) Label {
	switch {
	case score < 40:
		return Starting
	case score < 70:
		return Building
	default:
		return DialedIn
	}
}

// NextMilestone picks the first ladder rung above reference. reference is
// usually the best streak while current is the live one, so Remaining is
// measured from current. ok is false when reference is 0: there is no
// streak to project from yet.
func NextMilestone(reference, current int) (m Milestone, ok bool) {
	if reference == 0 {
		return Milestone{}, false
	}
	target := reference + milestoneStep
	for _, rung := range milestones {
		if rung > reference {
			target = rung
			break
		}
	}
	return Milestone{Target: target, Remaining: max(0, target-current)}, true
}
