package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Skaland01/Kollektiv/source"
	"github.com/Skaland01/Kollektiv/types"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown --format %q: expected table or json", format)
	}
}

// weekView is the JSON shape of one scheduled week.
type weekView struct {
	Week        string                            `json:"week"`
	Start       string                            `json:"start"`
	End         string                            `json:"end"`
	Assignments map[types.MemberID][]types.RoomID `json:"assignments"`
}

// assignmentsView is the JSON shape of the live ledger.
type assignmentsView struct {
	Week        string                            `json:"week"`
	Assignments map[types.MemberID][]types.RoomID `json:"assignments"`
	Load        map[types.MemberID]int            `json:"load"`
}

func renderSchedule(w io.Writer, format string, h *source.Household, entries []types.WeekEntry) error {
	if format == formatJSON {
		views := make([]weekView, len(entries))
		for i, e := range entries {
			views[i] = weekView{
				Week:        e.Key.String(),
				Start:       e.Start.Format(time.DateOnly),
				End:         e.End.Format(time.DateOnly),
				Assignments: e.Assignments.RoomIDs(),
			}
		}

		return writeJSON(w, views)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WEEK\tFROM\tTO\tMEMBER\tROOMS")
	for _, e := range entries {
		for _, m := range h.Members {
			rooms, ok := e.Assignments[m.ID]
			if !ok {
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				e.Key, e.Start.Format(time.DateOnly), e.End.Format(time.DateOnly), m.Name, roomNames(rooms))
		}
	}

	return tw.Flush()
}

func renderAssignments(w io.Writer, format string, h *source.Household, week types.WeekKey, a types.Assignments, load map[types.MemberID]int) error {
	if format == formatJSON {
		return writeJSON(w, assignmentsView{
			Week:        week.String(),
			Assignments: a.RoomIDs(),
			Load:        load,
		})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Week %s\n", week)
	fmt.Fprintln(tw, "MEMBER\tROOMS\tLOAD")
	for _, m := range h.Members {
		rooms, ok := a[m.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", m.Name, roomNames(rooms), load[m.ID])
	}

	return tw.Flush()
}

func renderUpcoming(w io.Writer, format string, member types.MemberID, weeks []types.UpcomingWeek) error {
	if format == formatJSON {
		views := make([]weekView, len(weeks))
		for i, uw := range weeks {
			ids := make([]types.RoomID, len(uw.Rooms))
			for j, r := range uw.Rooms {
				ids[j] = r.ID
			}
			views[i] = weekView{
				Week:        uw.Key.String(),
				Start:       uw.Start.Format(time.DateOnly),
				End:         uw.End.Format(time.DateOnly),
				Assignments: map[types.MemberID][]types.RoomID{member: ids},
			}
		}

		return writeJSON(w, views)
	}

	if len(weeks) == 0 {
		_, err := fmt.Fprintf(w, "no scheduled weeks for %s\n", member)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WEEK\tFROM\tTO\tROOMS")
	for _, uw := range weeks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			uw.Key, uw.Start.Format(time.DateOnly), uw.End.Format(time.DateOnly), roomNames(uw.Rooms))
	}

	return tw.Flush()
}

func roomNames(rooms []types.Room) string {
	if len(rooms) == 0 {
		return "-"
	}

	names := make([]string, len(rooms))
	for i, r := range rooms {
		names[i] = r.Name
	}

	return strings.Join(names, ", ")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
