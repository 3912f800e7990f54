package badge

import (
	"github.com/fxamacker/cbor/v2"
)

// Payload - тройка, которая запечатывается в бейдж.
type Payload struct {
	UserID   string `cbor:"1,keyasint"`
	Username string `cbor:"2,keyasint"`
	PassHash string `cbor:"3,keyasint"`
}

// encMode - Core Deterministic Encoding (RFC 8949 §4.2): одинаковый payload всегда
// даёт одинаковые байты до шифрования.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("badge: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("badge: CBOR decoder initialization failed: " + err.Error())
	}
}

func (p Payload) marshal() ([]byte, error) {
	return encMode.Marshal(p)
}

func (p *Payload) unmarshal(data []byte) error {
	return decMode.Unmarshal(data, p)
}
