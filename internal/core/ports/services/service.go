package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Claim       ClaimSvcFacade
	Validation  ValidationSvcFacade
	Automation  AutomationSvcFacade
	Statistics  StatisticsSvcFacade
	Lecturer    LecturerSvcFacade
	User        UserSvcFacade
	Report      ReportSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthHandlerSvcFacade
	Notifier    NotificationSink
}
