package configuration

const basePackage = "com.deliverytech.delivery_api"

func Default() Configuration {
	return Configuration{
		Coverage: Coverage{
			CSV:               "target/site/jacoco/jacoco.csv",
			ClassThreshold:    50,
			PackageThreshold:  70,
			MaxClasses:        20,
			MaxPackages:       10,
			MaxPackageClasses: 5,
			Recommendations: []Recommendation{
				{
					Name:     "controllers",
					Icon:     "🎮",
					Title:    "Controllers: focus on integration tests and edge cases",
					Packages: []string{basePackage + ".controller"},
					Metric:   "instruction",
					Below:    80,
					Hints: []string{
						"Add tests for input validation",
						"Test error and exception handling",
						"Cover authentication/authorization scenarios",
					},
				},
				{
					Name:     "services",
					Icon:     "🔧",
					Title:    "Services: expand unit and integration tests",
					Packages: []string{basePackage + ".service", basePackage + ".service.impl"},
					Metric:   "instruction",
					Below:    80,
					Hints: []string{
						"Test complex business logic",
						"Cover concurrency scenarios",
						"Test integration with repositories",
					},
				},
				{
					Name:   "branches",
					Icon:   "🌿",
					Title:  "Branches: improve condition coverage",
					Metric: "branch",
					Below:  80,
					Hints: []string{
						"Test alternative paths in the code",
						"Cover error cases and validations",
					},
				},
			},
			NextSteps: []string{
				"Prioritize tests for the packages with the lowest coverage",
				"Add integration tests for controllers",
				"Expand unit tests for services",
				"Improve branch coverage with condition tests",
				"Consider mutation testing to validate test quality",
			},
		},
		Jacoco: Jacoco{
			XML:  "target/site/jacoco/jacoco.xml",
			HTML: "target/site/jacoco/index.html",
		},
		DependencyCheck: DependencyCheck{
			XML:     "dependency-check-report/dependency-check-report.xml",
			HTML:    "dependency-check-report/index.html",
			Project: "delivery-api",
			Format:  "HTML",
		},
	}
}
