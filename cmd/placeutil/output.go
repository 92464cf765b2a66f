// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"github.com/wneessen/placeutil/internal/geocode"
	"github.com/wneessen/placeutil/internal/places"
)

const (
	formatJSON  = "json"
	formatTable = "table"

	maxCellWidth = 60
	ellipsis     = "…"
)

type printer struct {
	out    io.Writer
	format string
}

func newPrinter(out io.Writer, format string) (*printer, error) {
	switch format {
	case formatJSON, formatTable:
		return &printer{out: out, format: format}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %q", format)
	}
}

func (p *printer) print(value any) error {
	if p.format == formatJSON {
		encoder := json.NewEncoder(p.out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return nil
	}

	header, rows := tableRows(value)
	table := tablewriter.NewWriter(p.out)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	for _, row := range rows {
		for i := range row {
			row[i] = runewidth.Truncate(row[i], maxCellWidth, ellipsis)
		}
		table.Append(row)
	}
	table.Render()
	return nil
}

// tableRows converts a command result into a table header and its rows.
func tableRows(value any) ([]string, [][]string) {
	switch v := value.(type) {
	case []places.Prediction:
		rows := make([][]string, 0, len(v))
		for _, prediction := range v {
			rows = append(rows, []string{prediction.Description, prediction.PlaceID,
				strings.Join(prediction.Types, ", ")})
		}
		return []string{"Description", "Place ID", "Types"}, rows
	case *places.Place:
		rows := [][]string{
			{"Place ID", v.PlaceID},
			{"Name", v.Name},
			{"Address", v.FormattedAddress},
			{"Types", strings.Join(v.Types, ", ")},
		}
		if v.Geometry != nil {
			rows = append(rows, []string{"Location", v.Geometry.Location.String()})
		}
		if v.Rating > 0 {
			rows = append(rows, []string{"Rating", strconv.FormatFloat(v.Rating, 'f', 1, 64)})
		}
		if v.Website != "" {
			rows = append(rows, []string{"Website", v.Website})
		}
		return []string{"Field", "Value"}, rows
	case *places.NormalizedAddress:
		if v == nil {
			return []string{"Field", "Value"}, nil
		}
		return []string{"Field", "Value"}, [][]string{
			{"Place ID", v.PlaceID},
			{"Full address", v.FullAddress},
			{"Address 1", v.Address1},
			{"State", v.State.String()},
			{"City", v.City.String()},
			{"Locality", v.Locality.String()},
			{"Zipcode", v.Zipcode.String()},
			{"Country", v.Country.String()},
		}
	case *places.OpeningHoursSummary:
		if v == nil {
			return []string{"Day", "Open", "Close"}, nil
		}
		rows := make([][]string, 0, len(v.Periods))
		for _, period := range v.Periods {
			rows = append(rows, []string{weekday(period.Day), period.Open, period.Close})
		}
		return []string{"Day", "Open", "Close"}, rows
	case []string:
		rows := make([][]string, 0, len(v))
		for _, label := range v {
			rows = append(rows, []string{label})
		}
		return []string{"Category"}, rows
	case geocode.Address:
		street := strings.TrimSpace(v.Street + " " + v.HouseNumber)
		country := v.Country
		if v.CountryCode != "" {
			country += " (" + strings.ToUpper(v.CountryCode) + ")"
		}
		return []string{"Field", "Value"}, [][]string{
			{"Address", v.DisplayName},
			{"Street", street},
			{"Postcode", v.Postcode},
			{"City", v.City},
			{"Suburb", v.Suburb},
			{"County", v.County},
			{"State", v.State},
			{"Country", country},
			{"Location", v.Coordinate().String()},
		}
	case distanceResult:
		return []string{"From", "To", "Distance (km)"}, [][]string{{
			v.From.String(), v.To.String(), strconv.FormatFloat(v.DistanceKm, 'f', 2, 64),
		}}
	default:
		return []string{"Value"}, [][]string{{fmt.Sprintf("%v", v)}}
	}
}

func weekday(day int) string {
	if day < 0 || day > 6 {
		return strconv.Itoa(day)
	}
	return time.Weekday(day).String()
}
