package classifier

import (
	"regexp"
	"strings"
)

// Question types recognised by the knowledge engine.
const (
	QuestionWhat    = "what"
	QuestionHow     = "how"
	QuestionWhy     = "why"
	QuestionWhen    = "when"
	QuestionCan     = "can"
	QuestionTellMe  = "tell_me"
	QuestionCauses  = "causes"
	QuestionGeneral = "general"
)

// Intents recognised by the legacy matcher.
const (
	IntentSymptomInquiry        = "symptom_inquiry"
	IntentTreatmentInformation  = "treatment_information"
	IntentPreventionInformation = "prevention_information"
	IntentTestInformation       = "test_information"
	IntentEmergencyResponse     = "emergency_response"
	IntentEmotionalSupport      = "emotional_support"
	IntentLifestyleCounseling   = "lifestyle_counseling"
	IntentGeneralInquiry        = "general_inquiry"
)

func group(label string, priority int, patterns ...string) []Rule {
	rules := make([]Rule, len(patterns))
	for i, p := range patterns {
		rules[i] = Rule{Pattern: p, Label: label, Priority: priority}
	}
	return rules
}

func phrases(label string, priority int, words ...string) []Rule {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(w))
	}
	return group(label, priority, quoted...)
}

func concat(groups ...[]Rule) []Rule {
	var out []Rule
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// QuestionTypeRules classify a question by its opening form.
func QuestionTypeRules() []Rule {
	return concat(
		group(QuestionWhat, 70,
			`what\s+(is|are)\s+(.+)`,
			`what\s+(causes?|reasons?)\s+(.+)`,
			`what\s+(symptoms?|signs?)\s+(.+)`,
			`what\s+(treatments?|cures?)\s+(.+)`,
			`what\s+(cause|causes)\s+(.+)`,
			`what\s+(leads?\s+to|results?\s+in)\s+(.+)`,
		),
		group(QuestionHow, 60,
			`how\s+(do|can|is)\s+(.+)`,
			`how\s+to\s+(.+)`,
			`how\s+(does|can)\s+(.+)`,
		),
		group(QuestionWhy, 50,
			`why\s+(do|does|is|are)\s+(.+)`,
			`why\s+(would|should)\s+(.+)`,
		),
		group(QuestionWhen, 40,
			`when\s+(should|do|does)\s+(.+)`,
			`when\s+(is|are)\s+(.+)`,
		),
		group(QuestionCan, 30,
			`can\s+(you|i)\s+(.+)`,
			`could\s+(you|i)\s+(.+)`,
		),
		group(QuestionTellMe, 20,
			`tell\s+me\s+about\s+(.+)`,
			`explain\s+(.+)`,
			`describe\s+(.+)`,
		),
		group(QuestionCauses, 10,
			`(.+)\s+(causes?|reasons?)\s*$`,
			`(.+)\s+(cause)\s*$`,
			`causes?\s+of\s+(.+)`,
			`reasons?\s+for\s+(.+)`,
			`why\s+(.+)\s+happens?`,
		),
	)
}

// IntentRules classify a message into a legacy conversational intent.
func IntentRules() []Rule {
	return concat(
		phrases(IntentSymptomInquiry, 70, "I have", "I feel", "I experience", "symptoms", "feeling", "pain", "tired", "weak"),
		phrases(IntentTreatmentInformation, 60, "treatment", "cure", "medicine", "medication", "therapy", "how to treat"),
		phrases(IntentPreventionInformation, 50, "prevent", "avoid", "stop", "reduce risk", "prevention"),
		phrases(IntentTestInformation, 40, "test", "blood test", "diagnosis", "check", "screen", "results"),
		phrases(IntentEmergencyResponse, 30, "severe", "emergency", "urgent", "help", "bad", "serious", "intense"),
		phrases(IntentEmotionalSupport, 20, "scared", "worried", "afraid", "anxious", "concerned", "fear"),
		phrases(IntentLifestyleCounseling, 10, "diet", "exercise", "lifestyle", "food", "eat", "activity"),
	)
}

// NewQuestionClassifier returns the question type classifier.
func NewQuestionClassifier() *Classifier {
	return MustNew(QuestionTypeRules(), QuestionGeneral)
}

// NewIntentClassifier returns the legacy intent classifier.
func NewIntentClassifier() *Classifier {
	return MustNew(IntentRules(), IntentGeneralInquiry)
}
