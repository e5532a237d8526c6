package datastructures

import "go.mongodb.org/mongo-driver/bson/primitive"

// VoicebankConfig is one entry of the voicebank registry.
type VoicebankConfig struct {
	ID      primitive.ObjectID `json:"-" bson:"_id"`
	Name    string             `json:"name" bson:"name"`
	Path    string             `json:"path" bson:"path"`
	Default bool               `json:"default" bson:"default"`
}

// UnitSample is one sample entry of a voicebank's oto.ini inventory.
// Timings are milliseconds into the sample file.
type UnitSample struct {
	Alias        string  `json:"alias"`
	File         string  `json:"file"`
	Offset       float64 `json:"offset"`
	Consonant    float64 `json:"consonant"`
	Cutoff       float64 `json:"cutoff"`
	Preutterance float64 `json:"preutterance"`
	Overlap      float64 `json:"overlap"`
}

// VoicebankMeta mirrors a voicebank's optional character.json file.
type VoicebankMeta struct {
	Name   string `json:"name"`
	Author string `json:"author"`
	Image  string `json:"image"`
	Web    string `json:"web"`
}
