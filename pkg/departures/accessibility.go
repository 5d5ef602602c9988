package departures

const AccessibilityAccessible = "ACCESSIBLE"

// AccessibilityFlag collapses the OVapi accessibility category into 1 for ACCESSIBLE and 0 otherwise
func AccessibilityFlag(category string) int {
	if category == AccessibilityAccessible {
		return 1
	}

	return 0
}
