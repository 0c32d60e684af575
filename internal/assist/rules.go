package assist

// keywordRule binds an intent to its trigger words. Triggers are lowercase
// and matched by substring containment against normalized input.
type keywordRule struct {
	intent   string
	triggers []string
}

// keywordRules is the classifier's scoring table. Slice order is load-bearing:
// ties on score resolve to the first rule declared here, so reordering
// entries changes classification results.
var keywordRules = []keywordRule{
	{intent: "water ahead", triggers: []string{"water", "ahead", "see", "flooding", "flooded", "blocked", "front"}},
	{intent: "car not turning on", triggers: []string{"car", "not", "start", "turn", "won't", "engine", "ignition", "dead"}},
	{intent: "stuck in flood", triggers: []string{"stuck", "trapped", "stranded", "submerged", "water", "rising", "sinking"}},
	{intent: "flooded road", triggers: []string{"flooded", "road", "street", "highway", "drive", "water", "cross"}},
	{intent: "safe route", triggers: []string{"route", "path", "way", "navigate", "direction", "map", "travel", "avoid"}},
	{intent: "report flood", triggers: []string{"report", "tell", "alert", "notify", "share", "flooding", "inform"}},
	{intent: "prepare flood", triggers: []string{"prepare", "ready", "kit", "emergency", "supplies", "plan", "checklist"}},
	{intent: "insurance", triggers: []string{"insurance", "coverage", "policy", "claim", "cost", "fema", "nfip"}},
	{intent: "hello", triggers: []string{"hello", "hi", "hey", "greetings", "help", "start"}},
	{intent: "thank", triggers: []string{"thank", "thanks", "appreciate", "grateful"}},
	{intent: "emergency", triggers: []string{"911", "emergency", "urgent", "help", "danger", "life", "death", "dying"}},
}

// emergencyOverrides short-circuit scoring entirely. Any of these substrings
// in the input routes straight to the emergency intent, failing conservatively
// toward safety.
var emergencyOverrides = []string{"911", "dying", "drowning"}
