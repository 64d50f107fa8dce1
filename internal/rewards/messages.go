package rewards

// Rand is the randomness source for picking feedback lines.
type Rand interface {
	Intn(n int) int
}

var celebrationMessages = []string{
	"Purrfect! 🐱",
	"You're the cat's meow! 🐱",
	"Meow-velous work! 🐱",
	"Fur-tastic job! 🐱",
	"You're claw-some! 🐱",
	"Paws-itively brilliant! 🐱",
	"That's purr-fection! 🐱",
	"Feline fine! 🐱",
	"You nailed it, kitten! 🐱",
	"Cat-astrophically good! 🐱",
}

var encouragementMessages = []string{
	"Don't worry, every cat lands on their feet! Try again! 🐱",
	"Even cats need 9 tries sometimes! 🐱",
	"Keep going, curious cat! 🐱",
	"Paws and think about it! 🐱",
	"You've got this, little lion! 🐱",
	"Cats never give up, and neither should you! 🐱",
	"Almost there, whisker by whisker! 🐱",
	"Take a catnap and try again! 🐱",
}

var streakMessages = []string{
	"🔥 You're on fire! Even cats are impressed! 🐱",
	"🔥 Unstoppable! Like a cat chasing a laser! 🐱",
	"🔥 MEGA MEOW! Keep that streak going! 🐱",
	"🔥 You're the top cat! 🐱",
	"🔥 Legendary feline status achieved! 🐱",
}

// Celebration returns a line for a correct answer. Streaks of 5 or more
// get a streak line.
func Celebration(r Rand, streak int) string {
	if streak >= 5 {
		return streakMessages[r.Intn(len(streakMessages))]
	}
	return celebrationMessages[r.Intn(len(celebrationMessages))]
}

// Encouragement returns a line for a wrong answer.
func Encouragement(r Rand) string {
	return encouragementMessages[r.Intn(len(encouragementMessages))]
}
