package domain

// Version is the application version reported by the server
const Version = "1.0.0"
