package game

import "metro/utils"

// Spread summarises a set of per-route or per-transfer numbers.
type Spread struct {
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Avg    float64 `json:"avg"`
	Median int     `json:"median"`
}

func spreadOf(values []int) Spread {
	return Spread{
		Min:    utils.Min(values),
		Max:    utils.Max(values),
		Avg:    utils.Mean(values),
		Median: utils.Median(values),
	}
}

// MapStats describes the shape of a map before any game is played on it.
type MapStats struct {
	Routes              int    `json:"routes"`
	Nodes               int    `json:"nodes"`
	TotalRouteLength    int    `json:"total_route_length"`
	Transfers           int    `json:"transfers"`
	TotalRoutePoints    int    `json:"total_route_points"`
	TotalTransferPoints int    `json:"total_transfer_points"`
	RouteLength         Spread `json:"route_length"`
	RoutePoints         Spread `json:"route_points"`
	RouteTransfers      Spread `json:"route_transfers"`
	TransferPoints      Spread `json:"transfer_points"`
	StationBoxes        Spread `json:"station_boxes"`
}

func Analyze(m Map) (MapStats, error) {
	b, err := NewBoard(m)
	if err != nil {
		return MapStats{}, err
	}

	var lengths, points, routeTransfers, boxes, transferPoints []int
	for _, s := range b.Stations {
		lengths = append(lengths, len(s.Path))
		points = append(points, s.HighValue)
		routeTransfers = append(routeTransfers, b.CountStationPathTransfers(s))
		boxes = append(boxes, s.NumBoxes)
	}
	for _, t := range b.Transfers {
		transferPoints = append(transferPoints, t.Value())
	}

	return MapStats{
		Routes:              len(b.Stations),
		Nodes:               len(b.Nodes),
		TotalRouteLength:    utils.Sum(lengths),
		Transfers:           len(b.Transfers),
		TotalRoutePoints:    utils.Sum(points),
		TotalTransferPoints: utils.Sum(transferPoints),
		RouteLength:         spreadOf(lengths),
		RoutePoints:         spreadOf(points),
		RouteTransfers:      spreadOf(routeTransfers),
		TransferPoints:      spreadOf(transferPoints),
		StationBoxes:        spreadOf(boxes),
	}, nil
}
