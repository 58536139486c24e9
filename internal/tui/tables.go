// ABOUTME: Table builders for the resource list screens
// ABOUTME: Maps API records onto bubbles table rows

package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/tbenali/captrack/internal/client"
	"github.com/tbenali/captrack/internal/tui/styles"
)

const tableHeight = 12

func newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(tableHeight),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(styles.Text).
		Background(styles.Primary).
		Bold(false)
	t.SetStyles(s)
	return t
}

func sensorTable(sensors []client.Sensor) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 18},
		{Title: "Type", Width: 12},
		{Title: "Location", Width: 16},
		{Title: "Value", Width: 10},
		{Title: "Status", Width: 12},
	}
	rows := make([]table.Row, 0, len(sensors))
	for _, s := range sensors {
		rows = append(rows, table.Row{
			strconv.Itoa(s.ID),
			s.Name,
			s.Type,
			s.Location,
			fmt.Sprintf("%.1f %s", s.Value, s.Unit),
			s.Status,
		})
	}
	return newTable(columns, rows)
}

func machineTable(machines []client.Machine) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Name", Width: 18},
		{Title: "Model", Width: 14},
		{Title: "Status", Width: 12},
		{Title: "Temp", Width: 8},
		{Title: "Serial", Width: 14},
	}
	rows := make([]table.Row, 0, len(machines))
	for _, m := range machines {
		rows = append(rows, table.Row{
			m.ID,
			m.Name,
			m.Model,
			m.Status,
			fmt.Sprintf("%.1f°C", m.Temperature),
			m.SerialNumber,
		})
	}
	return newTable(columns, rows)
}

func capTable(caps []client.Cap) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Batch", Width: 12},
		{Title: "Machine", Width: 8},
		{Title: "Defective", Width: 10},
		{Title: "Defect", Width: 14},
		{Title: "Inspected", Width: 18},
	}
	rows := make([]table.Row, 0, len(caps))
	for _, c := range caps {
		rows = append(rows, table.Row{
			strconv.Itoa(c.ID),
			c.BatchNumber,
			strconv.Itoa(c.MachineID),
			yesNo(c.IsDefective),
			c.DefectType,
			c.InspectionDate,
		})
	}
	return newTable(columns, rows)
}

func detectionTable(detections []client.CapDetection) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Detected", Width: 18},
		{Title: "Defective", Width: 10},
		{Title: "Defect", Width: 14},
		{Title: "Confidence", Width: 10},
	}
	rows := make([]table.Row, 0, len(detections))
	for _, d := range detections {
		rows = append(rows, table.Row{
			strconv.Itoa(d.ID),
			d.DetectedAt,
			yesNo(d.IsDefective),
			d.DefectType,
			fmt.Sprintf("%.0f%%", d.Confidence*100),
		})
	}
	return newTable(columns, rows)
}

func userTable(accounts []client.Account) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Email", Width: 24},
		{Title: "Name", Width: 18},
		{Title: "Role", Width: 8},
	}
	rows := make([]table.Row, 0, len(accounts))
	for _, u := range accounts {
		rows = append(rows, table.Row{u.ID, u.Email, u.FullName, u.Role})
	}
	return newTable(columns, rows)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
