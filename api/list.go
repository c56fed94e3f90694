package api

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/martin2250/vitalsampler/database"
	"github.com/martin2250/vitalsampler/sampler"
)

type handleChannels struct {
	db  *database.Database
	log logrus.FieldLogger
}

type handleChannelsEntry struct {
	Channel sampler.Channel
	Count   int
	First   time.Time
	Last    time.Time
}

func (h handleChannels) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	infos := h.db.Channels()

	data := make([]handleChannelsEntry, len(infos))
	for i, info := range infos {
		data[i] = handleChannelsEntry(info)
	}

	writeJSON(w, h.log, data)
}
