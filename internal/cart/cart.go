package cart

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionCartKey = "cart"

func init() {
	// Session values are gob-encoded by the cookie/redis stores.
	gob.Register(map[uint]uint{})
}

// Snapshot is the session cart: product id -> quantity. Checkout operates on
// a snapshot value rather than reaching into the session itself, so the
// order logic stays testable without an HTTP round trip.
type Snapshot map[uint]uint

func (s Snapshot) IsEmpty() bool {
	return len(s) == 0
}

func (s Snapshot) Add(productID uint, qty uint) {
	s[productID] += qty
}

// SetQuantity updates a line; zero removes it.
func (s Snapshot) SetQuantity(productID uint, qty uint) {
	if qty == 0 {
		delete(s, productID)
		return
	}
	s[productID] = qty
}

// Load returns the cart stored in the caller's session, or an empty one.
func Load(c *gin.Context) Snapshot {
	sess := sessions.Default(c)
	if v, ok := sess.Get(sessionCartKey).(map[uint]uint); ok {
		return Snapshot(v)
	}
	return Snapshot{}
}

// Save writes the cart back to the session.
func Save(c *gin.Context, s Snapshot) error {
	sess := sessions.Default(c)
	sess.Set(sessionCartKey, map[uint]uint(s))
	return sess.Save()
}

// Clear empties the session cart.
func Clear(c *gin.Context) error {
	return Save(c, Snapshot{})
}
