package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name CoordinateSource --dir ../domain/stadium --output domain/stadium --outpkg stadiummock --filename coordinate_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name InfoSource --dir ../domain/stadium --output domain/stadium --outpkg stadiummock --filename info_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/fixture --output domain/fixture --outpkg fixturemock --filename source_mock.go
