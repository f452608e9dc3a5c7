// Package feed publishes computed routes as a GTFS-realtime feed so that
// standard transit tooling can consume them. Every route becomes one added
// trip whose stop time updates visit the origin station, the intermediate
// stations and the stop, in travel order. Fares have no place in GTFS-rt
// and are not carried.
package feed

import (
	"fmt"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/randytsao24/navnet/internal/models"
)

// Version is the GTFS-realtime specification version written in headers
const Version = "2.0"

// ContentType is the media type served for encoded feeds
const ContentType = "application/x-protobuf"

// TripID names the trip for a route
func TripID(r models.Route) string {
	return r.Station + ">" + r.Stop
}

// Build converts routes into a full dataset feed message
func Build(info models.NetworkInfo, routes []models.Route, now time.Time) *gtfs.FeedMessage {
	msg := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String(Version),
			Incrementality:      gtfs.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(uint64(now.Unix())),
		},
		Entity: make([]*gtfs.FeedEntity, 0, len(routes)),
	}

	for i, r := range routes {
		msg.Entity = append(msg.Entity, &gtfs.FeedEntity{
			Id:         proto.String(fmt.Sprintf("%s-%d", TripID(r), i)),
			TripUpdate: tripUpdate(info, r),
		})
	}
	return msg
}

func tripUpdate(info models.NetworkInfo, r models.Route) *gtfs.TripUpdate {
	visits := make([]string, 0, len(r.Connections)+2)
	visits = append(visits, r.Station)
	visits = append(visits, r.Connections...)
	visits = append(visits, r.Stop)

	updates := make([]*gtfs.TripUpdate_StopTimeUpdate, len(visits))
	for i, id := range visits {
		updates[i] = &gtfs.TripUpdate_StopTimeUpdate{
			StopSequence: proto.Uint32(uint32(i)),
			StopId:       proto.String(id),
		}
	}

	return &gtfs.TripUpdate{
		Trip: &gtfs.TripDescriptor{
			TripId:               proto.String(TripID(r)),
			RouteId:              proto.String(info.Name),
			ScheduleRelationship: gtfs.TripDescriptor_ADDED.Enum(),
		},
		StopTimeUpdate: updates,
		Timestamp:      proto.Uint64(uint64(r.Info.CreatedAt.Unix())),
	}
}

// Marshal encodes routes in the protobuf wire format
func Marshal(info models.NetworkInfo, routes []models.Route, now time.Time) ([]byte, error) {
	data, err := proto.Marshal(Build(info, routes, now))
	if err != nil {
		return nil, fmt.Errorf("encoding feed: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a feed produced by Marshal back into routes. Fares are
// zero and creation times have second precision.
func Unmarshal(data []byte) ([]models.Route, error) {
	msg := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("parsing protobuf: %w", err)
	}
	return Routes(msg)
}

// Routes reads the trip updates of a feed as routes
func Routes(msg *gtfs.FeedMessage) ([]models.Route, error) {
	var routes []models.Route
	for _, entity := range msg.GetEntity() {
		tu := entity.GetTripUpdate()
		if tu == nil {
			continue
		}

		stops := tu.GetStopTimeUpdate()
		if len(stops) < 2 {
			return nil, fmt.Errorf("trip %q visits %d stops, want at least 2", tu.GetTrip().GetTripId(), len(stops))
		}
		visits := make([]string, len(stops))
		for i, stu := range stops {
			visits[i] = stu.GetStopId()
		}
		if want := visits[0] + ">" + visits[len(visits)-1]; tu.GetTrip().GetTripId() != want {
			return nil, fmt.Errorf("trip %q does not match its stop sequence", tu.GetTrip().GetTripId())
		}

		created := time.Unix(int64(tu.GetTimestamp()), 0).UTC()
		routes = append(routes, models.NewRoute(visits[0], visits[len(visits)-1], visits[1:len(visits)-1], created, 0))
	}
	return routes, nil
}
