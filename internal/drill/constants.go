package drill

// Worker configuration constants.
const (
	workerChannelMultiplier = 2
)

// Generation constants.
const (
	minSkillsPerParticipant = 1
	maxSkillsPerParticipant = 4
	percentageMultiplier    = 100
)

// Participant status values understood by the API.
const (
	statusPresent = "present"
	statusAbsent  = "absent"
)
