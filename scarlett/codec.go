package scarlett

import "encoding/binary"

// maxChunkSize is the largest payload the device will accept in one
// GET_DATA/SET_DATA chunk.
const maxChunkSize = 1024

// getData reads length bytes starting at the absolute device address
// offset, transparently chunking requests over maxChunkSize.
func (c *wireCodec) getData(offset, length uint32) ([]byte, error) {
	out := make([]byte, 0, length)
	for length > 0 {
		n := length
		if n > maxChunkSize {
			n = maxChunkSize
		}
		req := make([]byte, 8)
		binary.LittleEndian.PutUint32(req[0:4], offset)
		binary.LittleEndian.PutUint32(req[4:8], n)

		resp := make([]byte, n)
		if err := c.exchange(opGetData, req, resp); err != nil {
			return nil, err
		}
		out = append(out, resp...)
		offset += n
		length -= n
	}
	return out, nil
}

// setData writes data starting at the absolute device address offset,
// transparently chunking requests over maxChunkSize.
func (c *wireCodec) setData(offset uint32, data []byte) error {
	for len(data) > 0 {
		n := len(data)
		if n > maxChunkSize {
			n = maxChunkSize
		}
		chunk := data[:n]
		req := make([]byte, 8+n)
		binary.LittleEndian.PutUint32(req[0:4], offset)
		binary.LittleEndian.PutUint32(req[4:8], uint32(n))
		copy(req[8:], chunk)

		if err := c.exchange(opSetData, req, nil); err != nil {
			return err
		}
		offset += uint32(n)
		data = data[n:]
	}
	return nil
}

// dataCmd issues a DATA_CMD activation with the given 4-byte argument,
// the mechanism by which staged SET_DATA edits become live state.
func (c *wireCodec) dataCmd(arg uint32) error {
	req := make([]byte, 4)
	binary.LittleEndian.PutUint32(req, arg)
	return c.exchange(opDataCmd, req, nil)
}
