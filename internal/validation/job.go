package validation

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/invoicecreator/invoice-creator/internal/domain"
)

const (
	FieldClientID   = "client_id"
	FieldTitle      = "title"
	FieldTargetName = "target_name"
	FieldRate       = "rate"
	FieldLocation   = "location"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"
	FieldTimeRange  = "time_range"

	MaxLocationLength = 255
)

var clockRe = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d(?::[0-5]\d)?$`)

// JobInput is a job form exactly as the user submitted it.
type JobInput struct {
	ClientID      string
	Title         string
	Description   string
	Location      string
	Rate          string
	RateType      string
	TargetType    string
	TargetName    string
	StartTime     string
	EndTime       string
	Had30MinBreak string
}

func JobInputFromForm(form url.Values) JobInput {
	return JobInput{
		ClientID:      form.Get("client_id"),
		Title:         form.Get("title"),
		Description:   form.Get("description"),
		Location:      form.Get("location"),
		Rate:          form.Get("rate"),
		RateType:      form.Get("rate_type"),
		TargetType:    form.Get("target_type"),
		TargetName:    form.Get("target_name"),
		StartTime:     form.Get("start_time"),
		EndTime:       form.Get("end_time"),
		Had30MinBreak: form.Get("had_30min_break"),
	}
}

// ValidateJob canonicalises in and checks every job rule. Times are same-day
// wall-clock values; a shift that crosses midnight is reported as a
// time_range error.
func ValidateJob(in JobInput) (domain.Job, FieldErrors) {
	row := domain.Job{
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Location:      strings.TrimSpace(in.Location),
		RateType:      oneOf(in.RateType, domain.RateTypeHourly, domain.RateTypeDaily),
		TargetType:    oneOf(in.TargetType, domain.TargetTypeClient, domain.TargetTypeClientClient),
		TargetName:    strings.TrimSpace(in.TargetName),
		StartTime:     optional(in.StartTime),
		EndTime:       optional(in.EndTime),
		Had30MinBreak: truthy(in.Had30MinBreak),
	}
	var errs FieldErrors

	clientID, err := strconv.ParseUint(strings.TrimSpace(in.ClientID), 10, 64)
	if err != nil || clientID == 0 || clientID > math.MaxUint32 {
		errs.Add(FieldClientID, "Please select a client")
	} else {
		row.ClientID = uint(clientID)
	}

	if row.Title == "" {
		errs.Add(FieldTitle, "Job title is required")
	}

	if row.TargetType == domain.TargetTypeClientClient && row.TargetName == "" {
		errs.Add(FieldTargetName, "Please provide the client's client name")
	}

	if raw := strings.TrimSpace(in.Rate); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		switch {
		case err != nil || math.IsNaN(rate) || math.IsInf(rate, 0):
			errs.Add(FieldRate, "Please provide a valid non-negative rate")
		case rate < 0:
			row.Rate = &rate
			errs.Add(FieldRate, "Please provide a valid non-negative rate")
		default:
			row.Rate = &rate
		}
	}

	if utf8.RuneCountInString(row.Location) > MaxLocationLength {
		errs.Add(FieldLocation, "Location is too long")
	}

	startOK := row.StartTime == nil || clockRe.MatchString(*row.StartTime)
	if !startOK {
		errs.Add(FieldStartTime, "Start time must be in HH:MM or HH:MM:SS format")
	}
	endOK := row.EndTime == nil || clockRe.MatchString(*row.EndTime)
	if !endOK {
		errs.Add(FieldEndTime, "End time must be in HH:MM or HH:MM:SS format")
	}

	if row.StartTime != nil && row.EndTime != nil && startOK && endOK {
		if secondsOfDay(*row.EndTime) <= secondsOfDay(*row.StartTime) {
			errs.Add(FieldTimeRange, "End time must be later than start time")
		}
	}

	return row, errs
}

func oneOf(v string, def string, allowed ...string) string {
	v = strings.TrimSpace(v)
	if v == def {
		return v
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func truthy(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "0"
}

// secondsOfDay expects a value already matched by clockRe.
func secondsOfDay(clock string) int {
	parts := strings.Split(clock, ":")
	total := 0
	for i, mult := range []int{3600, 60, 1} {
		if i >= len(parts) {
			break
		}
		n, _ := strconv.Atoi(parts[i])
		total += n * mult
	}
	return total
}
