package mood

import (
	"fmt"
	"strings"

	"github.com/MrKevinOConnell/zencasterbackend/internal/cast"
)

// promptPrefix is the fixed instruction plus one worked example. Holding it
// constant across runs, together with fixed decoding parameters, steers the
// model toward the "#RRGGBB - description" shape Parse expects.
const promptPrefix = `Given a list of casts, please assign the whole list a rgb hex color, and describe the vibe of the list:
#1: Okay I have this dumb thing on Twitter I call "DATABALL". Basically I live tweet a 90 minute coding session. I pretend there's an audience and it helps me focus. Feel free to mute. Here we go. THIS. IS. DATABALL!
#2: What are the best builder communities in Web3? Who else should be on the list?
#3: Is anyone building a tool that lives on top of Gnosis Safe and allows you to add a note to multisig transactions? E.g. "1 ETH for payroll"
#4: Hades is one of my favorite video games (highly recommend!) and they just announced Hades II and I'm so happy
Response: #A8B900 - A light yellow-green, conveying a feeling of enthusiasm, curiosity, and energy.
`

// BuildPrompt renders the numbered cast list under the fixed prefix and
// terminates with the response cue.
func BuildPrompt(casts []cast.Cast) string {
	var b strings.Builder
	b.WriteString(promptPrefix)
	for i, c := range casts {
		fmt.Fprintf(&b, "#%d: %s\n", i+1, c.Text)
	}
	b.WriteString("Response:")
	return b.String()
}
