package store

import (
	"context"
	"fmt"

	"advocatehub/internal/advocate/models"
	"advocatehub/internal/search"
)

// Seeder is the subset of a store needed to load fixture data.
type Seeder interface {
	Count(ctx context.Context, plan search.Plan) (int, error)
	Insert(ctx context.Context, a models.Advocate) (models.Advocate, error)
}

// Seed inserts records when the store is empty and reports how many were
// written. A non-empty store is left untouched.
func Seed(ctx context.Context, s Seeder, records []models.Advocate) (int, error) {
	existing, err := s.Count(ctx, search.Plan{})
	if err != nil {
		return 0, fmt.Errorf("count before seed: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}
	for i, a := range records {
		if _, err := s.Insert(ctx, a); err != nil {
			return i, fmt.Errorf("seed advocate %d: %w", i, err)
		}
	}
	return len(records), nil
}

// DefaultSeed is the development data set.
func DefaultSeed() []models.Advocate {
	return []models.Advocate{
		{FirstName: "Sarah", LastName: "Johnson", City: "New York", Degree: "MD", Specialties: []string{"Chronic pain", "Weight loss & nutrition"}, YearsOfExperience: 12, PhoneNumber: 2125551234},
		{FirstName: "Michael", LastName: "Chen", City: "Los Angeles", Degree: "PhD", Specialties: []string{"Trauma & PTSD", "Personal growth"}, YearsOfExperience: 8, PhoneNumber: 3105551234},
		{FirstName: "Emily", LastName: "Rodriguez", City: "Chicago", Degree: "MSW", Specialties: []string{"Substance use/abuse", "Women's issues"}, YearsOfExperience: 15, PhoneNumber: 3125551234},
		{FirstName: "David", LastName: "Thompson", City: "Houston", Degree: "MD", Specialties: []string{"Pediatrics", "ADHD"}, YearsOfExperience: 20, PhoneNumber: 7135551234},
		{FirstName: "Lisa", LastName: "Williams", City: "Philadelphia", Degree: "PhD", Specialties: []string{"Eating disorders", "Obsessive-compulsive disorders"}, YearsOfExperience: 7, PhoneNumber: 2155551234},
		{FirstName: "James", LastName: "Brown", City: "Phoenix", Degree: "MSW", Specialties: []string{"Life coaching"}, YearsOfExperience: 10, PhoneNumber: 6025551234},
		{FirstName: "Maria", LastName: "Garcia", City: "San Antonio", Degree: "MD", Specialties: []string{"Schizophrenia", "Chronic pain"}, YearsOfExperience: 5, PhoneNumber: 2105551234},
		{FirstName: "Robert", LastName: "Davis", City: "San Diego", Degree: "PhD", Specialties: []string{"ADHD testing", "ADHD"}, YearsOfExperience: 18, PhoneNumber: 6195551234},
		{FirstName: "Jessica", LastName: "Miller", City: "Dallas", Degree: "MSW", Specialties: []string{"Women's issues", "Personal growth"}, YearsOfExperience: 14, PhoneNumber: 2145551234},
		{FirstName: "Christopher", LastName: "Wilson", City: "San Jose", Degree: "MD", Specialties: []string{"Weight loss & nutrition"}, YearsOfExperience: 6, PhoneNumber: 4085551234},
		{FirstName: "Ashley", LastName: "Martinez", City: "New York", Degree: "PhD", Specialties: []string{"Trauma & PTSD", "Substance use/abuse"}, YearsOfExperience: 2, PhoneNumber: 2125552345},
		{FirstName: "Matthew", LastName: "Taylor", City: "Los Angeles", Degree: "MSW", Specialties: []string{"Eating disorders"}, YearsOfExperience: 24, PhoneNumber: 3105552345},
		{FirstName: "Amanda", LastName: "Anderson", City: "Chicago", Degree: "MD", Specialties: []string{"Pediatrics", "Obsessive-compulsive disorders"}, YearsOfExperience: 3, PhoneNumber: 3125552345},
		{FirstName: "Daniel", LastName: "Thomas", City: "New Orleans", Degree: "PhD", Specialties: []string{"Life coaching", "Schizophrenia"}, YearsOfExperience: 11, PhoneNumber: 5045552345},
		{FirstName: "Jennifer", LastName: "Jackson", City: "Boston", Degree: "JD", Specialties: []string{"Family Law", "Immigration Law"}, YearsOfExperience: 0, PhoneNumber: 6175552345},
	}
}
