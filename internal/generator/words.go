package generator

// Word pools. Order matters: reordering changes every seeded output.

var adjectives = []string{
	"Midnight", "Neon", "Golden", "Velvet", "Electric",
	"Silent", "Endless", "Crimson", "Flicker", "Silver",
	"Paper", "Static", "Hollow", "Burning", "Distant",
}

var nouns = []string{
	"Dreams", "Echoes", "Lights", "Streets", "Shadows",
	"Skies", "Horizons", "Rhythms", "Heartbeat", "Whispers",
	"Airplanes", "Starlight", "Wires", "Waves", "Satellites",
}

var images = []string{
	"the skyline hums beneath our feet",
	"headlights spill across the rain",
	"a radio plays in an empty room",
	"the stars lean down to listen",
	"our shadows dance on the wall",
	"the river carries every name",
	"paper hearts drift through the air",
	"the morning waits outside the door",
	"neon letters flicker out of time",
	"the city breathes a slower tune",
}

var actions = []string{
	"we run until the lights go down",
	"I hold on to the sound",
	"we chase another night",
	"you pull me from the ground",
	"we sing it loud and clear",
	"I fall into the rhythm",
	"we burn a little brighter",
	"you turn the silence into fire",
	"we dance like no one's watching",
	"I keep the tempo close",
}

var hooks = []string{
	"Hold on, hold tight, through the city night",
	"We are the echo, we are the light",
	"Turn it up and let the heartbeat show",
	"Oh, we never let it go",
	"Sing it back to me tonight",
	"Every wire is singing your name",
	"Fly, fly, paper airplane",
	"Static and starlight, all we need",
}

// Fallbacks substituted when a template slot would be empty.
const (
	fallbackGenre    = "midnight"
	fallbackDuration = "forever"
	fallbackPrompt   = "something true"
)
