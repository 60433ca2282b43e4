package bootstrap

import (
	"flight-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.InfraModule,
	components.NotifyModule,
	components.UseCaseModule,
	components.HandlerModule,
	components.WorkerModule,
)
