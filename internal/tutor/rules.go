// Package tutor is the offline chat tutor: a fixed set of rules that
// answers greetings, help requests, practice requests and common topic
// questions, keyed off the standards detected in the message.
package tutor

import (
	"fmt"
	"regexp"

	"github.com/pawsitive/mathcat/internal/problemgen"
	"github.com/pawsitive/mathcat/internal/standards"
)

// Welcome is the tutor's first line in an empty conversation.
const Welcome = `Hi! I'm your math tutor for 7th grade. Ask me anything about math, or say "give me a problem" to practice!`

const (
	greetingReply = "Hi there! I'm your 7th grade math tutor. What would you like to work on today? You can ask me about any math topic, or I can give you a practice problem!"

	topicMenu = "I'm here to help! What specific topic or problem are you struggling with? You can ask about:\n" +
		"• Ratios and proportions\n" +
		"• Integers and rational numbers\n" +
		"• Equations and expressions\n" +
		"• Geometry (circles, angles, area)\n" +
		"• Probability"

	defaultReply = "I'm your math tutor! You can:\n\n" +
		"• Ask me to explain any 7th grade math topic\n" +
		"• Say \"give me a problem\" for practice\n" +
		"• Ask for help with specific concepts\n" +
		"• Type a math question and I'll do my best to help!\n\n" +
		"What would you like to work on?"
)

// starterStandards are offered when a practice request names no topic.
var starterStandards = []string{"7-rp-1", "7-ns-1", "7-ee-4", "7-g-4", "7-sp-5"}

var (
	greetingRe = regexp.MustCompile(`(?i)^(hi|hello|hey|good morning|good afternoon)\b`)
	helpRe     = regexp.MustCompile(`(?i)help|stuck|don't understand|confused|explain`)
	practiceRe = regexp.MustCompile(`(?i)practice|problem|quiz|test me|give me`)
)

// topic is a canned explanation triggered by a keyword pattern.
type topic struct {
	re      *regexp.Regexp
	reply   string
	related []string
}

var topics = []topic{
	{
		re:    regexp.MustCompile(`(?i)percent|discount|tax|sale|tip`),
		reply: "Percent problems are very useful in real life! Remember:\n\n" +
			"• To find a percent of a number: multiply by the percent as a decimal\n" +
			"• For discounts: Original - (Original × discount rate)\n" +
			"• For tax/tip: Original + (Original × rate)\n\n" +
			"Want me to give you a percent problem to practice?",
		related: []string{"7-rp-3"},
	},
	{
		re:    regexp.MustCompile(`(?i)circle|radius|diameter|circumference|area.*circle`),
		reply: "Circles are fun! Here are the key formulas:\n\n" +
			"• **Circumference** = 2πr = πd\n" +
			"• **Area** = πr²\n\n" +
			"Remember: The radius is half the diameter, and π ≈ 3.14.\n\n" +
			"Want to try a circle problem?",
		related: []string{"7-g-4"},
	},
	{
		re:    regexp.MustCompile(`(?i)negative|integer|add.*subtract|positive.*negative`),
		reply: "Working with negative numbers follows some simple rules:\n\n" +
			"**Addition:**\n" +
			"• Same signs: Add and keep the sign\n" +
			"• Different signs: Subtract and keep the sign of the larger absolute value\n\n" +
			"**Subtraction:** Change to addition of the opposite!\n\n" +
			"**Multiplication/Division:**\n" +
			"• Same signs → Positive\n" +
			"• Different signs → Negative\n\n" +
			"Would you like some practice problems?",
		related: []string{"7-ns-1", "7-ns-2"},
	},
	{
		re:    regexp.MustCompile(`(?i)equation|solve for|variable`),
		reply: "To solve equations, remember to do the same thing to both sides to keep it balanced!\n\n" +
			"**Steps:**\n" +
			"1. Simplify each side if needed\n" +
			"2. Get variables on one side, constants on the other\n" +
			"3. Use inverse operations to isolate the variable\n\n" +
			"Want to practice solving some equations?",
		related: []string{"7-ee-4"},
	},
	{
		re:    regexp.MustCompile(`(?i)probability|chance|likely|odds`),
		reply: "Probability tells us how likely something is to happen!\n\n" +
			"• Probability = Favorable outcomes ÷ Total possible outcomes\n" +
			"• Always between 0 (impossible) and 1 (certain)\n" +
			"• Can be written as fractions, decimals, or percents\n\n" +
			"For compound events (two things happening), multiply the individual probabilities!\n\n" +
			"Want a probability problem?",
		related: []string{"7-sp-5", "7-sp-8"},
	},
}

// Reply is the tutor's answer to one message.
type Reply struct {
	Text             string              `json:"response"`
	RelatedStandards []string            `json:"relatedStandards"`
	Problem          *problemgen.Problem `json:"problem,omitempty"`
}

// Tutor applies the reply rules. Rules are tried in order and the first
// match wins.
type Tutor struct {
	gen *problemgen.Generator
}

// New returns a Tutor that draws practice problems from gen.
func New(gen *problemgen.Generator) *Tutor {
	return &Tutor{gen: gen}
}

// Reply answers a student message.
func (t *Tutor) Reply(message string) Reply {
	detected := standards.Detect(message)
	related := make([]string, 0, 2)
	for _, s := range detected[:min(2, len(detected))] {
		related = append(related, s.ID)
	}

	if greetingRe.MatchString(message) {
		return Reply{Text: greetingReply, RelatedStandards: []string{}}
	}

	if helpRe.MatchString(message) {
		if len(detected) == 0 {
			return Reply{Text: topicMenu, RelatedStandards: []string{}}
		}
		s := detected[0]
		return Reply{
			Text: fmt.Sprintf("I'd be happy to help with %s! %s\n\nHere's a tip: %s\n\nWould you like me to give you a practice problem to work through?",
				s.Title, s.Description, standards.ConceptTip(s.ID)),
			RelatedStandards: related,
		}
	}

	if practiceRe.MatchString(message) {
		if r, ok := t.practice(detected); ok {
			return r
		}
	}

	for _, tp := range topics {
		if tp.re.MatchString(message) {
			return Reply{Text: tp.reply, RelatedStandards: tp.related}
		}
	}

	if len(detected) > 0 {
		s := detected[0]
		return Reply{
			Text: fmt.Sprintf("That relates to %s: %s!\n\n%s\n\nWould you like me to explain this more or give you a practice problem?",
				s.Code, s.Title, s.Description),
			RelatedStandards: related,
		}
	}

	return Reply{Text: defaultReply, RelatedStandards: []string{}}
}

// practice serves a problem for the top detected standard, or a starter
// standard when none was detected. A detected standard without a
// generator yields no problem so the later rules get a chance.
func (t *Tutor) practice(detected []standards.Standard) (Reply, bool) {
	var id string
	if len(detected) > 0 {
		id = detected[0].ID
	} else {
		id = starterStandards[t.gen.Rand().Intn(len(starterStandards))]
	}
	if !t.gen.Has(id) {
		return Reply{}, false
	}

	p, err := t.gen.Generate(id)
	if err != nil {
		return Reply{}, false
	}
	return Reply{
		Text:             fmt.Sprintf("Here's a problem for you:\n\n**%s**\n\nTake your time and let me know your answer! If you need a hint, just ask.", p.Question),
		RelatedStandards: []string{id},
		Problem:          p,
	}, true
}
