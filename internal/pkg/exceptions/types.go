package exceptions

import (
	"fmt"

	"clinrec-service/internal/pkg/constvars"
)

var (
	// Input validation

	ErrBlankField = func(fieldName string) *CustomError {
		return BuildNewCustomError(nil, KindInvalidArgument, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevBlankField, fieldName))
	}
	ErrEndNotAfterStart = func() *CustomError {
		return BuildNewCustomError(nil, KindInvalidArgument, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevEndNotAfterStart)
	}
	ErrExactlyOneParty = func(role string) *CustomError {
		return BuildNewCustomError(nil, KindInvalidArgument, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevExactlyOneParty, role))
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInvalidArgument, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevInvalidInput)
	}
	ErrCannotParseTime = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInvalidArgument, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseTime)
	}

	// Lookups

	ErrResourceNotFound = func(resourceType, businessID string) *CustomError {
		return BuildNewCustomError(nil, KindNotFound, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevNoResourceWithID, resourceType, businessID))
	}
	ErrNoResourcesFound = func(resourceType, criteria string) *CustomError {
		return BuildNewCustomError(nil, KindNotFound, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevNoResourcesMatching, resourceType, criteria))
	}

	// Store interactions

	ErrCreateNotConfirmed = func(resourceType string) *CustomError {
		return BuildNewCustomError(nil, KindCreationFailed, constvars.StatusBadGateway, constvars.ErrClientStoreRejectedCreate, fmt.Sprintf(constvars.ErrDevCreateNotConfirmed, resourceType))
	}
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, KindStoreError, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, KindStoreError, constvars.StatusBadGateway, constvars.ErrClientStoreUnavailable, constvars.ErrDevSendHTTPRequest)
	}
	ErrStoreOperation = func(err error, operation, resourceType string) *CustomError {
		return BuildNewCustomError(err, KindStoreError, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevStoreOperationFailed, resourceType, operation))
	}
	ErrBundleMissingNextLink = func() *CustomError {
		return BuildNewCustomError(nil, KindStoreError, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevBundleMissingNextLink)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrDecodeResponse = func(err error, resourceType string) *CustomError {
		return BuildNewCustomError(err, KindDecodeError, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevDecodeResponse, resourceType))
	}

	// Auth

	ErrInvalidUsernameOrPassword = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInvalidArgument, constvars.StatusUnauthorized, constvars.ErrClientInvalidUsernameOrPassword, constvars.ErrDevInvalidCredentials)
	}
	ErrUserNotExist = func(err error) *CustomError {
		return BuildNewCustomError(err, KindNotFound, constvars.StatusNotFound, constvars.ErrClientInvalidUsernameOrPassword, constvars.ErrDevUserNotExists)
	}
	ErrSessionNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, KindNotFound, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevSessionNotFound)
	}
	ErrHashPassword = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevFailedToHashPassword)
	}

	// Mongo DB

	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}

	// Redis

	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}

	// RabbitMQ

	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublish, queueName))
	}

	// Minio

	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioPutObject, bucketName))
	}
)
