package store

import (
	"context"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryCollection is an in-process Collection used by tests and local runs.
// Documents round-trip through the bson codec so struct tags behave exactly
// as they do against Mongo.
type MemoryCollection struct {
	mu         sync.RWMutex
	docs       []bson.M
	uniqueKeys []string
}

// NewMemoryCollection builds an empty collection enforcing uniqueness on the
// given field names.
func NewMemoryCollection(uniqueKeys ...string) *MemoryCollection {
	return &MemoryCollection{uniqueKeys: uniqueKeys}
}

func (c *MemoryCollection) FindOne(ctx context.Context, filter bson.M, out interface{}) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, doc := range c.docs {
		if matches(doc, filter) {
			return true, decodeDoc(doc, out)
		}
	}
	return false, nil
}

func (c *MemoryCollection) FindAll(ctx context.Context, filter bson.M, out interface{}) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	slice := reflect.ValueOf(out).Elem()
	elemType := slice.Type().Elem()
	result := reflect.MakeSlice(slice.Type(), 0, 0)

	for _, doc := range c.docs {
		if !matches(doc, filter) {
			continue
		}
		elem := reflect.New(elemType)
		if err := decodeDoc(doc, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}

	slice.Set(result)
	return nil
}

func (c *MemoryCollection) InsertOne(ctx context.Context, doc interface{}) (string, error) {
	encoded, err := encodeDoc(doc)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range c.uniqueKeys {
		value, ok := encoded[key]
		if !ok {
			continue
		}
		for _, existing := range c.docs {
			if valuesEqual(existing[key], value) {
				return "", ErrDuplicateKey
			}
		}
	}

	id, ok := encoded["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		encoded["_id"] = id
	}
	c.docs = append(c.docs, encoded)
	return id.Hex(), nil
}

func (c *MemoryCollection) UpdateOne(ctx context.Context, filter, set bson.M, upsert bool) (*UpdateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, doc := range c.docs {
		if matches(doc, filter) {
			modified := applySet(doc, set)
			result := &UpdateResult{MatchedCount: 1}
			if modified {
				result.ModifiedCount = 1
			}
			return result, nil
		}
	}

	if !upsert {
		return &UpdateResult{}, nil
	}

	// Mongo seeds an upserted document from the filter's equality fields.
	doc := bson.M{}
	for k, v := range filter {
		doc[k] = v
	}
	applySet(doc, set)
	id, ok := doc["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		doc["_id"] = id
	}
	c.docs = append(c.docs, doc)
	return &UpdateResult{UpsertedID: id.Hex()}, nil
}

func (c *MemoryCollection) UpdateMany(ctx context.Context, filter, set bson.M) (*UpdateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := &UpdateResult{}
	for _, doc := range c.docs {
		if matches(doc, filter) {
			result.MatchedCount++
			if applySet(doc, set) {
				result.ModifiedCount++
			}
		}
	}
	return result, nil
}

func (c *MemoryCollection) DeleteOne(ctx context.Context, filter bson.M) (*DeleteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, doc := range c.docs {
		if matches(doc, filter) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return &DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &DeleteResult{}, nil
}

func (c *MemoryCollection) DeleteMany(ctx context.Context, filter bson.M) (*DeleteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.docs[:0]
	var deleted int64
	for _, doc := range c.docs {
		if matches(doc, filter) {
			deleted++
		} else {
			kept = append(kept, doc)
		}
	}
	c.docs = kept
	return &DeleteResult{DeletedCount: deleted}, nil
}

// Count reports how many documents match the filter. Test helper.
func (c *MemoryCollection) Count(filter bson.M) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, doc := range c.docs {
		if matches(doc, filter) {
			n++
		}
	}
	return n
}

func matches(doc, filter bson.M) bool {
	for key, want := range filter {
		if !valuesEqual(doc[key], want) {
			return false
		}
	}
	return true
}

func applySet(doc, set bson.M) bool {
	modified := false
	for key, value := range set {
		if !valuesEqual(doc[key], value) {
			doc[key] = value
			modified = true
		}
	}
	return modified
}

func valuesEqual(a, b interface{}) bool {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func encodeDoc(doc interface{}) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeDoc(doc bson.M, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}
