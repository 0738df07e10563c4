package survey

// Option is a selectable answer. For primary questions the id is a category
// letter; for secondary questions it is the plant id awarded on selection.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is a quiz question with its fixed option set.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

// PrimaryQuestionCount is the number of primary questions a complete survey
// must answer.
const PrimaryQuestionCount = 10

// PrimaryQuestions returns the ten fixed personality questions in order.
func PrimaryQuestions() []Question {
	return primaryQuestions
}

// SecondaryQuestion returns the follow-up question for the given primary
// category.
func SecondaryQuestion(c Category) (Question, bool) {
	return secondaryQuestionFor(c)
}

func secondaryQuestionFor(c Category) (Question, bool) {
	q, ok := secondaryQuestions[c]
	return q, ok
}

var primaryQuestions = []Question{
	{
		ID:       "q1",
		Question: "Your friends are planning a night out. What's your ideal evening?",
		Options: []Option{
			{ID: "A", Text: "Cozy night in with tea and a good book or documentary"},
			{ID: "B", Text: "Small gathering with close friends where we can have deep conversations"},
			{ID: "C", Text: "Being the life of the party, meeting new people all night"},
			{ID: "D", Text: "Trying that new experimental art installation, then an underground jazz club"},
			{ID: "E", Text: "Spontaneous road trip to a place none of you have been before"},
			{ID: "F", Text: "Creating a themed dinner party experience for your friends"},
		},
	},
	{
		ID:       "q2",
		Question: "It's your first date and you get to pick the location. Where are you taking them?",
		Options: []Option{
			{ID: "A", Text: "A hidden speakeasy with vintage cocktails and mysterious ambiance"},
			{ID: "B", Text: "A museum or botanical garden where you can discuss what you see"},
			{ID: "C", Text: "A volunteer event where you can help others while getting to know each other"},
			{ID: "D", Text: "A festival or social event where you can introduce them to your friends"},
			{ID: "E", Text: "Rock climbing or an escape room - something active and exciting"},
			{ID: "F", Text: "A creative workshop where you make something together to remember the day"},
		},
	},
	{
		ID:       "q3",
		Question: "Which pick-up line would you most likely use (even ironically)?",
		Options: []Option{
			{ID: "A", Text: `"Do you believe in fate? Because I think our meeting was written in the stars."`},
			{ID: "B", Text: `"If you were a book in the library, I'd check you out for the maximum renewal period."`},
			{ID: "C", Text: `"I've got a shoulder if you ever need one to lean on."`},
			{ID: "D", Text: `"You must be a sunflower, because you just brightened my whole day!"`},
			{ID: "E", Text: `"Life's short - wanna go on an adventure with me?"`},
			{ID: "F", Text: `"If I could rearrange the alphabet, I'd put U and I together to make art."`},
		},
	},
	{
		ID:       "q4",
		Question: "Your plant crush just sent you a text. How long do you wait to respond?",
		Options: []Option{
			{ID: "A", Text: "I'll respond at midnight. Keep them guessing."},
			{ID: "B", Text: "I'll think carefully about my response and send a thoughtful message later."},
			{ID: "C", Text: "Immediately! And I'll ask how their day is going."},
			{ID: "D", Text: "Respond quickly and include a group selfie from the party I'm at."},
			{ID: "E", Text: "Whenever I get around to it - might be in the middle of climbing a mountain!"},
			{ID: "F", Text: "I'll send back a poem or drawing I created just for them."},
		},
	},
	{
		ID:       "q5",
		Question: "Which of these items would most likely be found in your home?",
		Options: []Option{
			{ID: "A", Text: "A collection of obscure vintage items with stories behind them"},
			{ID: "B", Text: "Wall-to-wall bookshelves and a dedicated meditation space"},
			{ID: "C", Text: "First aid kit and homemade cookies ready for visitors"},
			{ID: "D", Text: "A well-stocked bar cart and plenty of seating for spontaneous gatherings"},
			{ID: "E", Text: "Travel souvenirs and gear for your next expedition"},
			{ID: "F", Text: "Art supplies everywhere and walls covered in creative projects"},
		},
	},
	{
		ID:       "q6",
		Question: "How would you handle a disagreement with your plant partner?",
		Options: []Option{
			{ID: "A", Text: "Create some distance to process my feelings, then return with a new perspective"},
			{ID: "B", Text: "Analyze the root cause and propose a logical solution"},
			{ID: "C", Text: "Focus on how they're feeling and work to restore harmony"},
			{ID: "D", Text: "Talk it out immediately with friends to get multiple perspectives"},
			{ID: "E", Text: "Address it head-on, then suggest an activity to break the tension"},
			{ID: "F", Text: "Express my feelings through a creative outlet, then share it with them"},
		},
	},
	{
		ID:       "q7",
		Question: "What's your ideal weekend morning?",
		Options: []Option{
			{ID: "A", Text: "Sleeping in late, blinds drawn, enjoying the quiet darkness"},
			{ID: "B", Text: "Peaceful contemplation with coffee and a challenging puzzle"},
			{ID: "C", Text: "Making breakfast for someone you care about"},
			{ID: "D", Text: "Brunch with friends, sharing stories from the week"},
			{ID: "E", Text: "Up at dawn for a hike to catch the sunrise"},
			{ID: "F", Text: "Flowing with inspiration on a creative project in your pajamas"},
		},
	},
	{
		ID:       "q8",
		Question: "Choose a playlist name that best represents your vibe:",
		Options: []Option{
			{ID: "A", Text: `"Shadows & Whispers: Music for Midnight"`},
			{ID: "B", Text: `"Contemplative Classics & Thoughtful Tunes"`},
			{ID: "C", Text: `"Comfort Sounds for Healing Hearts"`},
			{ID: "D", Text: `"Party Anthems & Social Soundtracks"`},
			{ID: "E", Text: `"Adventure Awaits: Music to Move You"`},
			{ID: "F", Text: `"Creative Flow: Inspiration Station"`},
		},
	},
	{
		ID:       "q9",
		Question: "Your date shows up with a surprise gift. What are you hoping it is?",
		Options: []Option{
			{ID: "A", Text: "A mysterious antique with an intriguing story behind it"},
			{ID: "B", Text: "A book by your favorite philosopher or scientist"},
			{ID: "C", Text: "A homemade remedy for that cold you mentioned last week"},
			{ID: "D", Text: "Concert tickets to see your favorite band together"},
			{ID: "E", Text: "Gear for a spontaneous weekend adventure"},
			{ID: "F", Text: "Art supplies or something they created just for you"},
		},
	},
	{
		ID:       "q10",
		Question: "Which emoji do you use most frequently?",
		Options: []Option{
			{ID: "A", Text: "🖤, 🌙, ✨, 🔮"},
			{ID: "B", Text: "🤔, 📚, 💭, 🧠"},
			{ID: "C", Text: "💗, 🤗, 🌿, 🍵"},
			{ID: "D", Text: "🎉, 😂, 👯, 🌻"},
			{ID: "E", Text: "🔥, 🚀, 🌋, 💯"},
			{ID: "F", Text: "🎨, 🌈, 💫, 🦋"},
		},
	},
}

var secondaryQuestions = map[Category]Question{
	CategoryMysterious: {
		ID:       "secondaryA",
		Question: "Which sounds most like you?",
		Options: []Option{
			{ID: "blueRose", Text: "I'm passionate and unconventional in how I express my feelings"},
			{ID: "moonflower", Text: "I'm selective about who gets to know the real me"},
			{ID: "blackDahlia", Text: "I have a complex past that makes me who I am today"},
			{ID: "hellebore", Text: "I thrive during times when others struggle, offering unexpected beauty"},
		},
	},
	CategoryIntellectual: {
		ID:       "secondaryB",
		Question: "How do you approach personal growth?",
		Options: []Option{
			{ID: "bonsai", Text: "Through careful cultivation and mindful pruning of habits"},
			{ID: "orchid", Text: "By creating ideal conditions for my specific needs"},
			{ID: "bamboo", Text: "With flexibility while maintaining strong principles"},
			{ID: "japaneseMaple", Text: "By adapting my perspective as seasons of life change"},
			{ID: "ginkgoTree", Text: "By drawing on ancient wisdom and resilience"},
		},
	},
	CategoryNurturing: {
		ID:       "secondaryC",
		Question: "How do you typically support others?",
		Options: []Option{
			{ID: "aloeVera", Text: "Practical help and healing presence in difficult times"},
			{ID: "lavender", Text: "Creating calm environments and emotional safety"},
			{ID: "rosemary", Text: "Protecting others and preserving important memories"},
			{ID: "chamomile", Text: "Being reliably present during crises"},
		},
	},
	CategorySocial: {
		ID:       "secondaryD",
		Question: "At a gathering, you're most likely to:",
		Options: []Option{
			{ID: "sunflower", Text: "Brighten the mood and help everyone feel optimistic"},
			{ID: "rosemary", Text: "Connect people with shared interests and protect the vulnerable"},
			{ID: "cherryBlossom", Text: "Create memorable moments that everyone treasures"},
			{ID: "hibiscus", Text: "Bring warmth and vibrant energy to any conversation"},
		},
	},
	CategoryAdventurous: {
		ID:       "secondaryE",
		Question: "Your approach to challenges is:",
		Options: []Option{
			{ID: "marigold", Text: "Meeting them with cheerful brightness and social support"},
			{ID: "amaryllis", Text: "Commanding attention with dramatic flair and confidence"},
			{ID: "dandelion", Text: "Fearlessly spreading your influence across new territories"},
			{ID: "fireLily", Text: "Rising from setbacks stronger than before"},
		},
	},
	CategoryArtistic: {
		ID:       "secondaryF",
		Question: "Your creative expression typically:",
		Options: []Option{
			{ID: "bleedingHeart", Text: "Reveals your emotional vulnerability and authentic feelings"},
			{ID: "birdOfParadise", Text: "Makes a bold, exotic statement that can't be ignored"},
			{ID: "wisteria", Text: "Creates dramatic, romantic atmospheres that envelop others"},
			{ID: "poppy", Text: "Captures fleeting beauty that leaves lasting impressions"},
		},
	},
}
