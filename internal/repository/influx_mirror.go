package repository

import (
	"context"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"field_station/internal/models"
)

// InfluxMirror forwards collected records to an InfluxDB bucket so
// dashboards can graph them without reading the CSV archive.
type InfluxMirror struct {
	client  influxdb2.Client
	org     string
	bucket  string
	station string
}

func NewInfluxMirror(url, token, org, bucket, station string) *InfluxMirror {
	return &InfluxMirror{
		client:  influxdb2.NewClient(url, token),
		org:     org,
		bucket:  bucket,
		station: station,
	}
}

var _ RecordMirror = (*InfluxMirror)(nil)

// Publish writes one point per record. Records with no readings at all
// are skipped since InfluxDB rejects points without fields.
func (m *InfluxMirror) Publish(ctx context.Context, rec models.CollectedRecord) error {
	fields := map[string]interface{}{}
	addField := func(name string, v *float64) {
		if v != nil {
			fields[name] = *v
		}
	}
	addField("soil_temperature", rec.SoilTemperature)
	addField("soil_moisture", rec.SoilMoisture)
	addField("air_temperature", rec.AirTemperature)
	addField("air_humidity", rec.AirHumidity)
	addField("sunlight_visible", rec.SunlightVisible)
	addField("sunlight_uv", rec.SunlightUV)
	addField("sunlight_ir", rec.SunlightIR)
	if rec.Relay != nil {
		fields["relay"] = *rec.Relay
	}
	if rec.RelayChanged != nil {
		fields["relay_state_change"] = *rec.RelayChanged
	}
	if len(fields) == 0 {
		return nil
	}

	point := influxdb2.NewPoint("station_record",
		map[string]string{"station_id": m.station},
		fields,
		rec.CollectedAt,
	)
	return m.client.WriteAPIBlocking(m.org, m.bucket).WritePoint(ctx, point)
}

func (m *InfluxMirror) Close() {
	m.client.Close()
}
