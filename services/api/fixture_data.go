package api

import "medbook/models"

// seedHospitals returns the static reference set served by the fixture:
// four hospitals with three services each.
func seedHospitals() []models.Hospital {
	return []models.Hospital{
		{
			ID:       "1",
			Name:     "City General Hospital",
			Address:  "Badda, Dhaka",
			ImageURL: "https://images.pexels.com/photos/668298/pexels-photo-668298.jpeg",
			Rating:   4.5,
			Services: []models.Service{
				{ID: "101", Name: "General Consultation", Description: "Comprehensive check-up with a general physician", Price: 100, Duration: "30 min"},
				{ID: "102", Name: "Blood Test", Description: "Complete blood count analysis", Price: 50, Duration: "15 min"},
				{ID: "103", Name: "X-Ray", Description: "Diagnostic imaging service", Price: 120, Duration: "20 min"},
			},
		},
		{
			ID:       "2",
			Name:     "Square Hospital ltd",
			Address:  "Panthapath, Dhaka",
			ImageURL: "https://images.pexels.com/photos/247786/pexels-photo-247786.jpeg",
			Rating:   4.8,
			Services: []models.Service{
				{ID: "201", Name: "Specialist Consultation", Description: "Appointment with medical specialist", Price: 150, Duration: "45 min"},
				{ID: "202", Name: "Physical Therapy", Description: "Therapeutic exercises for rehabilitation", Price: 80, Duration: "60 min"},
				{ID: "203", Name: "Nutritional Counseling", Description: "Personalized dietary advice", Price: 90, Duration: "45 min"},
			},
		},
		{
			ID:       "3",
			Name:     "Community Health Clinic",
			Address:  "Mirpur 2, Dhaka",
			ImageURL: "https://images.pexels.com/photos/236380/pexels-photo-236380.jpeg",
			Rating:   4.2,
			Services: []models.Service{
				{ID: "301", Name: "Vaccination", Description: "Routine immunization services", Price: 40, Duration: "10 min"},
				{ID: "302", Name: "Mental Health Counseling", Description: "Therapy session with mental health professional", Price: 110, Duration: "50 min"},
				{ID: "303", Name: "Allergy Testing", Description: "Comprehensive allergy panel tests", Price: 130, Duration: "30 min"},
			},
		},
		{
			ID:       "4",
			Name:     "Advanced Diagnostic Center",
			Address:  "Uttara, Dhaka",
			ImageURL: "https://images.pexels.com/photos/263402/pexels-photo-263402.jpeg",
			Rating:   4.7,
			Services: []models.Service{
				{ID: "401", Name: "MRI Scan", Description: "Magnetic resonance imaging", Price: 350, Duration: "45 min"},
				{ID: "402", Name: "Ultrasound", Description: "Diagnostic ultrasound imaging", Price: 180, Duration: "30 min"},
				{ID: "403", Name: "Cardiac Stress Test", Description: "Evaluation of heart function during exercise", Price: 220, Duration: "60 min"},
			},
		},
	}
}
