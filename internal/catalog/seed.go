package catalog

// Seed returns the built-in job listings used when no external source is
// configured.
func Seed() []JobRecord {
	return []JobRecord{
		{Title: "Software Engineer", Company: "TechCorp", Salary: 70000, Location: "San Francisco, CA", Skills: []string{"Java", "C++", "Python"}, Description: "Develop and maintain software systems."},
		{Title: "Data Scientist", Company: "DataSolve", Salary: 90000, Location: "New York, NY", Skills: []string{"Python", "Machine Learning", "SQL"}, Description: "Analyze data to provide actionable insights."},
		{Title: "Web Developer", Company: "Webify", Salary: 60000, Location: "Remote", Skills: []string{"HTML", "CSS", "JavaScript"}, Description: "Build and maintain websites and web apps."},
		{Title: "UX Designer", Company: "DesignLab", Salary: 65000, Location: "Austin, TX", Skills: []string{"Design", "User Research", "Wireframing"}, Description: "Design intuitive user interfaces."},
		{Title: "DevOps Engineer", Company: "CloudWorks", Salary: 80000, Location: "Seattle, WA", Skills: []string{"AWS", "Docker", "CI/CD"}, Description: "Manage infrastructure and deployment pipelines."},
		{Title: "Product Manager", Company: "Innovate", Salary: 95000, Location: "Los Angeles, CA", Skills: []string{"Agile", "Scrum", "Leadership"}, Description: "Lead product development teams and strategies."},
		{Title: "Mobile App Developer", Company: "AppMinds", Salary: 78000, Location: "Chicago, IL", Skills: []string{"Swift", "Kotlin", "React Native"}, Description: "Create and maintain mobile applications."},
		{Title: "Network Administrator", Company: "NetGuard", Salary: 72000, Location: "Denver, CO", Skills: []string{"Cisco", "Networking", "Security"}, Description: "Maintain and secure company networks."},
		{Title: "Database Administrator", Company: "DataCore", Salary: 75000, Location: "Dallas, TX", Skills: []string{"SQL", "Oracle", "MySQL"}, Description: "Manage company databases and data integrity."},
		{Title: "AI Researcher", Company: "AI Labs", Salary: 110000, Location: "Boston, MA", Skills: []string{"AI", "Machine Learning", "Python"}, Description: "Research and develop AI technologies."},
		{Title: "Security Analyst", Company: "SecureTech", Salary: 85000, Location: "San Diego, CA", Skills: []string{"Cybersecurity", "Penetration Testing", "Python"}, Description: "Monitor and defend against security threats."},
		{Title: "Technical Writer", Company: "DocuPro", Salary: 60000, Location: "Remote", Skills: []string{"Writing", "Documentation", "API"}, Description: "Create technical documentation for products."},
		{Title: "Cloud Architect", Company: "CloudScape", Salary: 115000, Location: "Houston, TX", Skills: []string{"AWS", "Azure", "Cloud Infrastructure"}, Description: "Design and manage cloud solutions."},
		{Title: "Game Developer", Company: "GameHype", Salary: 70000, Location: "Remote", Skills: []string{"Unity", "C#", "3D Modeling"}, Description: "Design and develop video games."},
		{Title: "IT Support Specialist", Company: "SupportPlus", Salary: 50000, Location: "Phoenix, AZ", Skills: []string{"Troubleshooting", "Hardware", "Helpdesk"}, Description: "Provide technical support for systems."},
	}
}
