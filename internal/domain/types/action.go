package types

const (
	ActionRabbitMQConnected       = "rabbitmq_connected"
	ActionRabbitConnectionClosed  = "rabbitmq_connection_closed"
	ActionRabbitConnectionClosing = "rabbitmq_connection_closing"
	ActionRabbitReconnected       = "rabbitmq_reconnection_success"

	ActionDatabaseTransactionFailed = "database_transaction_failed"

	ActionLoad           = "load"
	ActionQualityCheck   = "quality_check"
	ActionAggregate      = "aggregate"
	ActionProcessAndSave = "process_and_save"
	ActionSaveArtifacts  = "save_artifacts"
	ActionMirrorFailed   = "mirror_failed"
	ActionPublishExport  = "publish_export"
)
