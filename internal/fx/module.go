package fx

import "go.uber.org/fx"

var AppModule = fx.Options(
	ConfigModule,
	InfrastructureModule,
	DomainModule,
	RoutesModule,
	ServerModule,
)
