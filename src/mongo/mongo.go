package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/StickynoteStupid/utau/src/datastructures"
	"github.com/StickynoteStupid/utau/src/instances"
)

type mongoInstance struct {
	c  *mongo.Client
	db *mongo.Database
}

func (i *mongoInstance) Ping(ctx context.Context) error {
	return i.c.Ping(ctx, nil)
}

func (i *mongoInstance) FetchVoicebanks(ctx context.Context) ([]datastructures.VoicebankConfig, error) {
	vbs := []datastructures.VoicebankConfig{}
	cur, err := i.db.Collection("voicebanks").Find(ctx, bson.M{})
	if err == nil {
		err = cur.All(ctx, &vbs)
	}
	return vbs, err
}

func NewInstance(ctx context.Context, uri, db string) (instances.MongoInstance, error) {
	c, err := mongo.NewClient(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	i := &mongoInstance{
		c:  c,
		db: c.Database(db),
	}

	if err = c.Connect(ctx); err != nil {
		return nil, err
	}

	if err = i.Ping(ctx); err != nil {
		return nil, err
	}

	return i, nil
}
