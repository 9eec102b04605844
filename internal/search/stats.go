package search

import (
	"math"
	"sort"

	"advocatehub/internal/advocate/models"
)

// Stats summarizes a record set.
type Stats struct {
	TotalAdvocates         int            `json:"totalAdvocates"`
	CitiesCount            int            `json:"citiesCount"`
	SpecialtiesCount       int            `json:"specialtiesCount"`
	AverageExperience      int            `json:"averageExperience"`
	ExperienceDistribution map[string]int `json:"experienceDistribution"`
}

// ComputeStats counts distinct cities and specialties, averages experience
// (rounded half away from zero) and buckets each record once via BucketFor.
func ComputeStats(records []models.Advocate) Stats {
	cities := make(map[string]struct{})
	specialties := make(map[string]struct{})
	dist := make(map[string]int)
	sum := 0
	for _, a := range records {
		cities[a.City] = struct{}{}
		for _, s := range a.Specialties {
			specialties[s] = struct{}{}
		}
		sum += a.YearsOfExperience
		dist[BucketFor(a.YearsOfExperience).Code]++
	}

	avg := 0
	if len(records) > 0 {
		avg = int(math.Round(float64(sum) / float64(len(records))))
	}
	return Stats{
		TotalAdvocates:         len(records),
		CitiesCount:            len(cities),
		SpecialtiesCount:       len(specialties),
		AverageExperience:      avg,
		ExperienceDistribution: dist,
	}
}

// Option is a selectable filter value.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterOptions lists the values a filter UI can offer for a record set.
type FilterOptions struct {
	Cities      []Option `json:"cityOptions"`
	Specialties []Option `json:"specialtyOptions"`
	Experience  []Option `json:"experienceOptions"`
}

// ComputeFilterOptions returns sorted distinct cities and specialties. Option
// values are the labels themselves so a selected option, fed back as a
// criterion, matches the records it came from.
func ComputeFilterOptions(records []models.Advocate) FilterOptions {
	cities := make(map[string]struct{})
	specialties := make(map[string]struct{})
	for _, a := range records {
		cities[a.City] = struct{}{}
		for _, s := range a.Specialties {
			specialties[s] = struct{}{}
		}
	}

	experience := make([]Option, 0, len(Buckets))
	for _, b := range Buckets {
		experience = append(experience, Option{Value: b.Code, Label: b.Label})
	}
	return FilterOptions{
		Cities:      sortedOptions(cities),
		Specialties: sortedOptions(specialties),
		Experience:  experience,
	}
}

func sortedOptions(set map[string]struct{}) []Option {
	labels := make([]string, 0, len(set))
	for label := range set {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	opts := make([]Option, 0, len(labels))
	for _, label := range labels {
		opts = append(opts, Option{Value: label, Label: label})
	}
	return opts
}
