package mapping

import "github.com/harrisonrobin/tasksheet/pkg/model"

// Vocabulary translates task statuses between the storage locale used in the
// sheet and the display locale used by API clients.
type Vocabulary struct {
	toDisplay map[string]string
	toStorage map[string]string
}

// DisplayStatuses lists every status a client may send or receive.
var DisplayStatuses = []string{
	model.StatusNew,
	model.StatusInprogress,
	model.StatusPending,
	model.StatusDone,
}

// DefaultVocabulary is the Indonesian ↔ English vocabulary. "Ditunda" is an
// accepted spelling of Pending but is never written.
func DefaultVocabulary() *Vocabulary {
	v := NewVocabulary(map[string]string{
		model.StatusNew:        "Baru",
		model.StatusInprogress: "Dikerjakan",
		model.StatusPending:    "Tertunda",
		model.StatusDone:       "Selesai",
	})
	v.AddSynonym("Ditunda", model.StatusPending)
	return v
}

// NewVocabulary builds a vocabulary from display → canonical storage terms.
func NewVocabulary(canonical map[string]string) *Vocabulary {
	v := &Vocabulary{
		toDisplay: make(map[string]string, len(canonical)),
		toStorage: make(map[string]string, len(canonical)),
	}
	for display, storage := range canonical {
		v.toStorage[display] = storage
		v.toDisplay[storage] = display
	}
	return v
}

// AddSynonym makes an extra storage term read as display. The canonical
// storage term of display is unchanged.
func (v *Vocabulary) AddSynonym(storage, display string) {
	v.toDisplay[storage] = display
}

// ToDisplay translates a stored status. Unknown values pass through.
func (v *Vocabulary) ToDisplay(storage string) string {
	if display, ok := v.toDisplay[storage]; ok {
		return display
	}
	return storage
}

// ToStorage translates a client status to its canonical storage term.
// Unknown values pass through.
func (v *Vocabulary) ToStorage(display string) string {
	if storage, ok := v.toStorage[display]; ok {
		return storage
	}
	return display
}

// IsDisplayStatus reports whether s is one of DisplayStatuses.
func IsDisplayStatus(s string) bool {
	for _, d := range DisplayStatuses {
		if s == d {
			return true
		}
	}
	return false
}
