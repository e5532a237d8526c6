package global

type ServerCfg struct {
	ConfigFile string `mapstructure:"config_file" json:"config_file"`
	Level      string `mapstructure:"level" json:"level"`

	RedisURI          string `mapstructure:"redis_uri" json:"redis_uri"`
	RedisRequestEvent string `mapstructure:"redis_request_event" json:"redis_request_event"`
	RedisRenderSetKey string `mapstructure:"redis_render_set_key" json:"redis_render_set_key"`

	MongoURI string `mapstructure:"mongo_uri" json:"mongo_uri"`
	MongoDB  string `mapstructure:"mongo_db" json:"mongo_db"`

	ApiBind string   `mapstructure:"api_bind" json:"api_bind"`
	Cors    []string `mapstructure:"cors" json:"cors"`

	DictionaryPath  string `mapstructure:"dictionary_path" json:"dictionary_path"`
	VoicebankDir    string `mapstructure:"voicebank_dir" json:"voicebank_dir"`
	DefaultSinger   string `mapstructure:"default_singer" json:"default_singer"`
	ConsonantLength int    `mapstructure:"consonant_length" json:"consonant_length"`
}
