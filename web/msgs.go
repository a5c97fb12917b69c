package web

import (
	"encoding/json"

	codenames "github.com/bcspragu/spymaster"
	"github.com/bcspragu/spymaster/spymaster"
)

// HintResponse is the reply to a hint request.
type HintResponse struct {
	ID       codenames.HintID `json:"id"`
	Clue     string           `json:"clue"`
	Number   int              `json:"number"`
	Risk     string           `json:"risk"`
	GameOver bool             `json:"game_over"`
	// Ranked is only set when the caller asks for an explanation.
	Ranked []spymaster.Scored `json:"ranked,omitempty"`
}

// Subscribed is the first message on the hint feed.
type Subscribed struct{}

func (s *Subscribed) MarshalJSON() ([]byte, error) {
	return withAction("SUBSCRIBED", struct{}{})
}

// HintGiven is sent on the hint feed every time a hint is recorded.
type HintGiven struct {
	Entry *codenames.HintEntry `json:"entry"`
}

func (hg *HintGiven) MarshalJSON() ([]byte, error) {
	// Marshalling *HintGiven directly would recurse.
	type plain HintGiven
	return withAction("HINT", (*plain)(hg))
}

// withAction adds an "action" field to msg, which must marshal to a JSON
// object.
func withAction(action string, msg interface{}) ([]byte, error) {
	dat, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(dat, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = make(map[string]json.RawMessage)
	}
	if fields["action"], err = json.Marshal(action); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}
