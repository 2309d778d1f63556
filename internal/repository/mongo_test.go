package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// newMock returns an mtest harness backed by the driver's mock deployment.
// Each mt.Run gets a fresh client, so queued responses never leak between
// cases.
func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

// command pops the next command sent to the mock and checks its name.
func command(mt *mtest.T, name string) bson.Raw {
	mt.Helper()
	ev := mt.GetStartedEvent()
	if ev == nil {
		mt.Fatalf("no command sent, want %s", name)
	}
	if ev.CommandName != name {
		mt.Fatalf("command = %s, want %s", ev.CommandName, name)
	}
	return ev.Command
}

// nth returns element i of the array stored under key in doc.
func nth(mt *mtest.T, doc bson.Raw, key string, i int) bson.RawValue {
	mt.Helper()
	vals, err := doc.Lookup(key).Array().Values()
	if err != nil {
		mt.Fatalf("%s: %v", key, err)
	}
	if i >= len(vals) {
		mt.Fatalf("%s has %d elements, want index %d", key, len(vals), i)
	}
	return vals[i]
}

func cursor(ns string, docs ...bson.D) bson.D {
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, docs...)
}

func deleted(n int) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n})
}

func updated(n int) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n}, bson.E{Key: "nModified", Value: n})
}
