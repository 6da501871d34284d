package document

import (
	"crypto/rand"
	"encoding/binary"
	"sync/atomic"
	"time"
)

// ObjectID is a unique 12-byte identifier similar to MongoDB's ObjectID.
// Structure: [4-byte timestamp][5-byte random][3-byte counter]
type ObjectID [12]byte

var objectIDCounter uint32
var processUnique [5]byte

func init() {
	rand.Read(processUnique[:])
}

// NewObjectID generates a new ObjectID.
func NewObjectID() ObjectID {
	var id ObjectID

	timestamp := uint32(time.Now().Unix())
	binary.BigEndian.PutUint32(id[0:4], timestamp)

	copy(id[4:9], processUnique[:])

	counter := atomic.AddUint32(&objectIDCounter, 1)
	id[9] = byte(counter >> 16)
	id[10] = byte(counter >> 8)
	id[11] = byte(counter)

	return id
}
