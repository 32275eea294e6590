package okta

// ErrorDescriptions maps Okta error codes to static human-readable
// descriptions used by APIError.Error. The server's errorSummary is used as a
// fallback for codes without an entry.
var ErrorDescriptions = map[string]string{
	"E0000001": "API validation failed.",
	"E0000002": "The request was not valid.",
	"E0000003": "The request body was not well-formed.",
	"E0000004": "Authentication failed.",
	"E0000005": "Invalid session.",
	"E0000006": "You do not have permission to perform the requested action.",
	"E0000007": "The requested resource was not found.",
	"E0000008": "The requested path was not found.",
	"E0000009": "Internal server error.",
	"E0000010": "Service is in read-only mode.",
	"E0000011": "Invalid token provided.",
	"E0000012": "Unsupported media type.",
	"E0000013": "Invalid client app id.",
	"E0000014": "Update of credentials failed.",
	"E0000015": "You do not have permission to access the feature you are requesting.",
	"E0000016": "Activation failed because the user is already active.",
	"E0000017": "Password reset failed.",
	"E0000018": "Bad request. Accept and/or Content-Type headers are likely not set.",
	"E0000019": "Bad request. Accept and/or Content-Type headers did not match the expected value.",
	"E0000020": "Bad request.",
	"E0000021": "Bad request. Accept and/or Content-Type headers are likely not set.",
	"E0000022": "The endpoint does not support the provided HTTP method.",
	"E0000023": "Operation failed because user profile is mastered under another system.",
	"E0000024": "Bad request. This operation on app metadata is not yet supported.",
	"E0000025": "App version assignment failed.",
	"E0000026": "This endpoint has been deprecated.",
	"E0000028": "The request is missing a required parameter.",
	"E0000029": "Invalid paging request.",
	"E0000030": "Bad request. Invalid date. Dates must be of the form yyyy-MM-dd'T'HH:mm:ss.SSSZZ.",
	"E0000031": "Bad request. Invalid search criteria.",
	"E0000032": "Unlock is not allowed for this user.",
	"E0000033": "Bad request. Can't specify a search query and filter in the same request.",
	"E0000034": "Forgot password not allowed on specified user.",
	"E0000035": "Change password not allowed on specified user.",
	"E0000036": "Change recovery question not allowed on specified user.",
	"E0000037": "Type mismatch exception.",
	"E0000038": "This operation is not allowed in the user's current status.",
	"E0000039": "Operation on application settings failed.",
	"E0000040": "Application label must not be the same as an existing application label.",
	"E0000041": "Credentials should not be set on this resource based on the scheme.",
	"E0000042": "Setting the error page redirect URL failed.",
	"E0000043": "Self service application assignment is not supported.",
	"E0000044": "Self service application assignment is not enabled.",
	"E0000045": "Field mapping bad request.",
	"E0000046": "Deactivate application for user forbidden.",
	"E0000047": "You have exceeded the rate limit. Wait and retry the request.",
	"E0000048": "Entity not found exception.",
	"E0000056": "Delete application forbidden.",
	"E0000060": "Unsupported operation.",
	"E0000061": "Tab error.",
	"E0000063": "Invalid combination of parameters specified.",
	"E0000064": "Password is expired and must be changed.",
	"E0000068": "Invalid passcode/answer.",
	"E0000069": "User locked out.",
	"E0000074": "Factor service error.",
	"E0000075": "Cannot modify the app user because it is mastered by an external app.",
	"E0000079": "This operation is not allowed in the current authentication state.",
	"E0000080": "The password does not meet the complexity requirements of the current password policy.",
	"E0000095": "Recovery not allowed for unknown user.",
	"E0000105": "You have accessed an account recovery link that has expired or been previously used.",
	"E0000110": "You have accessed a link that has expired or been previously used.",
	"E0000207": "Invalid or expired one-time password.",
	"E0000212": "Verification failed.",
}
