package speech

import (
	"strings"

	"github.com/genricoloni/courtside/internal/domain"
)

// SelectVoice picks the commentary voice: an en-GB or en-US voice whose name contains
// "Male", else the first English voice, else the first voice offered.
func SelectVoice(voices []domain.Voice) (domain.Voice, bool) {
	if len(voices) == 0 {
		return domain.Voice{}, false
	}

	for _, v := range voices {
		if (strings.Contains(v.Lang, "en-GB") || strings.Contains(v.Lang, "en-US")) &&
			strings.Contains(v.Name, "Male") {
			return v, true
		}
	}

	for _, v := range voices {
		if strings.Contains(v.Lang, "en") {
			return v, true
		}
	}

	return voices[0], true
}
