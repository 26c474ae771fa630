package familyv1

import (
	"fmt"

	"github.com/hashicorp/go-msgpack/v2/codec"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype used by family RPCs.
const CodecName = "msgpack"

var msgpackHandle = &codec.MsgpackHandle{}

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec marshals family messages with msgpack.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, msgpackHandle).Encode(v); err != nil {
		return nil, fmt.Errorf("msgpack encode %T: %w", v, err)
	}
	return out, nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	if err := codec.NewDecoderBytes(data, msgpackHandle).Decode(v); err != nil {
		return fmt.Errorf("msgpack decode %T: %w", v, err)
	}
	return nil
}

func (Codec) Name() string {
	return CodecName
}
